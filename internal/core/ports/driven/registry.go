package driven

import (
	"context"
	"io"

	"github.com/histograph/importer/internal/core/domain"
)

// Registry is the remote dataset registry API.
// The HTTP adapter implements this interface; the import orchestrator
// only ever talks to the registry through it.
type Registry interface {
	// CreateDataset creates a dataset from the raw text of its JSON
	// descriptor file. Creation is idempotent from the caller's
	// perspective: an already-existing dataset is success. The returned
	// bool is true when the dataset was newly created, false when it
	// already existed.
	CreateDataset(ctx context.Context, descriptor []byte) (created bool, err error)

	// DeleteDataset deletes the dataset with the given identifier.
	DeleteDataset(ctx context.Context, id string) error

	// UploadFile streams one data file to the dataset's per-kind upload
	// endpoint. force is forwarded to the registry, which decides
	// whether to overwrite existing data.
	UploadFile(ctx context.Context, id string, kind domain.FileKind, r io.Reader, force bool) error
}
