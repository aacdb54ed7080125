package driving

import "context"

// Importer runs a one-shot import (or clear) batch over the configured
// import directories.
type Importer interface {
	// Run scans the import roots, restricts to the requested dataset IDs
	// (empty means all), and syncs or deletes each discovered dataset in
	// order. A non-nil error means the scan itself failed and nothing was
	// processed; per-dataset failures are carried in the Report instead.
	Run(ctx context.Context, ids []string, opts RunOptions) (*Report, error)

	// Scan lists the datasets that a Run with the same IDs would process,
	// without touching the network.
	Scan(ctx context.Context, ids []string) ([]DatasetInfo, error)
}

// RunOptions selects the mode for a whole run.
type RunOptions struct {
	// Force is forwarded on every file upload; the registry decides
	// whether to overwrite existing data.
	Force bool

	// Clear switches the run into delete mode: each dataset is deleted
	// instead of created and uploaded.
	Clear bool
}

// Report is the outcome of one run.
type Report struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Datasets holds one result per processed dataset, in processing
	// order. A dataset ID found under two import roots appears twice.
	Datasets []DatasetResult

	// NotFound lists requested dataset IDs that matched no directory.
	NotFound []string
}

// Failed reports whether any dataset failed or any requested dataset
// was not found. Drives the process exit code.
func (r *Report) Failed() bool {
	if len(r.NotFound) > 0 {
		return true
	}
	for _, d := range r.Datasets {
		if d.Err != nil {
			return true
		}
		for _, f := range d.Files {
			if f.Err != nil {
				return true
			}
		}
	}
	return false
}

// DatasetResult is the outcome for one dataset.
type DatasetResult struct {
	// ID is the dataset identifier.
	ID string

	// Dir is the dataset directory that was processed.
	Dir string

	// Created is true when the registry newly created the dataset,
	// false when it already existed (sync mode only).
	Created bool

	// Err is the dataset-level failure: a missing descriptor, a create
	// failure, or a delete failure. When set, no files were uploaded.
	Err error

	// Files holds per-file upload outcomes (sync mode only).
	Files []FileResult
}

// FileResult is the outcome for one data file upload.
type FileResult struct {
	// Kind is the data file kind ("pits" or "relations").
	Kind string

	// Skipped is true when the file does not exist on disk. A dataset
	// without a relations file is valid; this is not an error.
	Skipped bool

	// Err is the upload failure, nil on success or skip.
	Err error
}

// DatasetInfo describes a discovered dataset for listing.
type DatasetInfo struct {
	// ID is the dataset identifier.
	ID string

	// Dir is the dataset directory.
	Dir string

	// HasDescriptor is true when <id>.dataset.json exists.
	HasDescriptor bool

	// HasPits is true when <id>.pits.ndjson exists.
	HasPits bool

	// HasRelations is true when <id>.relations.ndjson exists.
	HasRelations bool
}
