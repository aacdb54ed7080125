package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/core/ports/driven"
	"github.com/histograph/importer/internal/core/ports/driving"
	"github.com/histograph/importer/internal/logger"
)

// Ensure ImportOrchestrator implements the interface.
var _ driving.Importer = (*ImportOrchestrator)(nil)

// ImportOrchestrator drives the per-dataset create-then-upload flow, or
// the delete flow in clear mode. Datasets are processed strictly one at
// a time: a dataset fully completes, success or failure, before the next
// begins. There is no rollback; a failed upload does not undo dataset
// creation or earlier uploads.
type ImportOrchestrator struct {
	scanner  *Scanner
	registry driven.Registry
}

// NewImportOrchestrator creates a new import orchestrator.
func NewImportOrchestrator(scanner *Scanner, registry driven.Registry) *ImportOrchestrator {
	return &ImportOrchestrator{
		scanner:  scanner,
		registry: registry,
	}
}

// Run scans the import roots and processes every discovered dataset.
// A scan failure is the only fatal outcome; everything after the scan is
// accumulated into the report so the batch completes as far as it can.
func (o *ImportOrchestrator) Run(ctx context.Context, ids []string, opts driving.RunOptions) (*driving.Report, error) {
	datasets, err := o.scanner.Scan(ids)
	if err != nil {
		return nil, err
	}

	report := &driving.Report{RunID: uuid.NewString()}
	resolver := NewResolver(ids)

	logger.Info("run %s: %d datasets to process", report.RunID, len(datasets))

	for _, ds := range datasets {
		resolver.MarkSeen(ds.ID)

		var result driving.DatasetResult
		if opts.Clear {
			result = o.clearOne(ctx, ds)
		} else {
			result = o.syncOne(ctx, ds, opts.Force)
		}
		report.Datasets = append(report.Datasets, result)
	}

	report.NotFound = resolver.Missing()
	return report, nil
}

// Scan lists the datasets a Run would process, with file presence, and
// never touches the network.
func (o *ImportOrchestrator) Scan(_ context.Context, ids []string) ([]driving.DatasetInfo, error) {
	datasets, err := o.scanner.Scan(ids)
	if err != nil {
		return nil, err
	}

	infos := make([]driving.DatasetInfo, 0, len(datasets))
	for _, ds := range datasets {
		infos = append(infos, driving.DatasetInfo{
			ID:            ds.ID,
			Dir:           ds.Dir,
			HasDescriptor: fileExists(ds.DescriptorPath()),
			HasPits:       fileExists(ds.DataFilePath(domain.FileKindPits)),
			HasRelations:  fileExists(ds.DataFilePath(domain.FileKindRelations)),
		})
	}
	return infos, nil
}

// syncOne handles one dataset in sync mode: descriptor check, idempotent
// create, then the two data files in fixed order (pits before relations).
// A create failure blocks the uploads; an upload failure does not block
// the remaining file.
func (o *ImportOrchestrator) syncOne(ctx context.Context, ds domain.Dataset, force bool) driving.DatasetResult {
	result := driving.DatasetResult{ID: ds.ID, Dir: ds.Dir}

	descriptor, err := os.ReadFile(ds.DescriptorPath())
	if err != nil {
		if os.IsNotExist(err) {
			result.Err = fmt.Errorf("%s: %w", ds.DescriptorPath(), domain.ErrDescriptorMissing)
		} else {
			result.Err = fmt.Errorf("read descriptor: %w", err)
		}
		return result
	}

	created, err := o.registry.CreateDataset(ctx, descriptor)
	if err != nil {
		result.Err = fmt.Errorf("create dataset %s: %w", ds.ID, err)
		return result
	}
	result.Created = created
	if created {
		logger.Info("dataset %s created", ds.ID)
	} else {
		logger.Info("dataset %s already exists", ds.ID)
	}

	for _, kind := range domain.FileKinds {
		result.Files = append(result.Files, o.uploadOne(ctx, ds, kind, force))
	}
	return result
}

// uploadOne streams one data file to the registry. A file missing on
// disk is a skip, not an error, and issues no network call.
func (o *ImportOrchestrator) uploadOne(ctx context.Context, ds domain.Dataset, kind domain.FileKind, force bool) driving.FileResult {
	result := driving.FileResult{Kind: string(kind)}

	path := ds.DataFilePath(kind)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("dataset %s: %s not found, skipped", ds.ID, path)
			result.Skipped = true
			return result
		}
		result.Err = fmt.Errorf("open %s: %w", path, err)
		return result
	}
	defer f.Close()

	logger.Debug("dataset %s: uploading %s", ds.ID, path)
	if err := o.registry.UploadFile(ctx, ds.ID, kind, f, force); err != nil {
		result.Err = fmt.Errorf("upload %s: %w", kind, err)
	}
	return result
}

// clearOne handles one dataset in clear mode.
func (o *ImportOrchestrator) clearOne(ctx context.Context, ds domain.Dataset) driving.DatasetResult {
	result := driving.DatasetResult{ID: ds.ID, Dir: ds.Dir}

	if err := o.registry.DeleteDataset(ctx, ds.ID); err != nil {
		result.Err = fmt.Errorf("delete dataset %s: %w", ds.ID, err)
		return result
	}
	logger.Info("dataset %s deleted", ds.ID)
	return result
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
