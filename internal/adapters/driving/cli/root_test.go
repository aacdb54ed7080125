package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/core/ports/driving"
)

// mockImporter implements driving.Importer for testing.
type mockImporter struct {
	report  *driving.Report
	runErr  error
	infos   []driving.DatasetInfo
	gotIDs  []string
	gotOpts driving.RunOptions
}

func (m *mockImporter) Run(_ context.Context, ids []string, opts driving.RunOptions) (*driving.Report, error) {
	m.gotIDs = ids
	m.gotOpts = opts
	return m.report, m.runErr
}

func (m *mockImporter) Scan(context.Context, []string) ([]driving.DatasetInfo, error) {
	return m.infos, nil
}

// setupRootTest injects a mock importer and resets flag state afterwards.
func setupRootTest(m *mockImporter) func() {
	old := importer
	importer = m
	return func() {
		importer = old
		force = false
		clearMode = false
		watchMode = false
		verbose = false
		cfgPath = ""
		rootCmd.SetArgs(nil)
	}
}

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_SyncSuccess(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		report: &driving.Report{
			Datasets: []driving.DatasetResult{{
				ID:      "a",
				Created: true,
				Files: []driving.FileResult{
					{Kind: "pits"},
					{Kind: "relations", Skipped: true},
				},
			}},
		},
	})
	defer cleanup()

	out, err := execute("a")

	assert.NoError(t, err)
	assert.Contains(t, out, "a: created\n")
	assert.Contains(t, out, "a: pits: uploaded\n")
	assert.Contains(t, out, "a: relations: file not found, skipped\n")
}

func TestRootCmd_PassesArgsAndFlags(t *testing.T) {
	m := &mockImporter{report: &driving.Report{}}
	cleanup := setupRootTest(m)
	defer cleanup()

	_, err := execute("--force", "a", "b")

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.gotIDs)
	assert.True(t, m.gotOpts.Force)
	assert.False(t, m.gotOpts.Clear)
}

func TestRootCmd_FailedDatasetExitsNonZero(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		report: &driving.Report{
			Datasets: []driving.DatasetResult{{
				ID:  "a",
				Err: &domain.APIError{Status: 400, Message: "invalid"},
			}},
		},
	})
	defer cleanup()

	out, err := execute()

	assert.Error(t, err)
	assert.Contains(t, out, "a: failed:")
}

func TestRootCmd_UploadFailurePrintsDetails(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		report: &driving.Report{
			Datasets: []driving.DatasetResult{{
				ID:      "a",
				Created: true,
				Files: []driving.FileResult{{
					Kind: "pits",
					Err: &domain.APIError{
						Status:  422,
						Message: "validation failed",
						Details: map[string]any{"line": 2},
					},
				}},
			}},
		},
	})
	defer cleanup()

	out, err := execute()

	assert.Error(t, err)
	assert.Contains(t, out, "a: pits: failed:")
	assert.Contains(t, out, `"line": 2`)
}

func TestRootCmd_NotFoundReported(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		report: &driving.Report{NotFound: []string{"missing-id"}},
	})
	defer cleanup()

	out, err := execute("missing-id")

	assert.Error(t, err)
	assert.Contains(t, out, "missing-id: not found in any configured import directory\n")
}

func TestRootCmd_ClearMode(t *testing.T) {
	m := &mockImporter{
		report: &driving.Report{
			Datasets: []driving.DatasetResult{{ID: "a"}},
		},
	}
	cleanup := setupRootTest(m)
	defer cleanup()

	out, err := execute("--clear", "a")

	assert.NoError(t, err)
	assert.True(t, m.gotOpts.Clear)
	assert.Contains(t, out, "a: deleted\n")
}

func TestRootCmd_WatchConflictsWithClear(t *testing.T) {
	m := &mockImporter{report: &driving.Report{}}
	cleanup := setupRootTest(m)
	defer cleanup()

	_, err := execute("--clear", "--watch")

	assert.Error(t, err)
	assert.Nil(t, m.gotIDs)
}

func TestRootCmd_FatalScanError(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		runErr: errors.New("list import directory /nope: permission denied"),
	})
	defer cleanup()

	_, err := execute()

	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{report: &driving.Report{}})
	defer cleanup()

	out, err := execute("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "histograph-import version")
}

func TestListCmd(t *testing.T) {
	cleanup := setupRootTest(&mockImporter{
		infos: []driving.DatasetInfo{{
			ID:            "a",
			Dir:           "/data/a",
			HasDescriptor: true,
			HasPits:       true,
		}},
	})
	defer cleanup()

	out, err := execute("list")

	assert.NoError(t, err)
	assert.Contains(t, out, "a: descriptor=true pits=true relations=false (/data/a)\n")
}
