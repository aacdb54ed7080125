package domain

import "path/filepath"

// FileKind identifies one of the two well-known data files of a dataset.
type FileKind string

// The data file kinds, in upload order.
const (
	FileKindPits      FileKind = "pits"
	FileKindRelations FileKind = "relations"
)

// FileKinds lists the data file kinds in the order they are uploaded.
// The order is part of the importer's contract: pits before relations,
// so relations never reference a PIT the registry has not seen yet.
var FileKinds = []FileKind{FileKindPits, FileKindRelations}

// IgnoredDirs are directory names never treated as datasets.
// Version-control and dependency-cache directories commonly found
// inside data checkouts.
var IgnoredDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"vendor":       true,
}

// Dataset is a dataset directory discovered under an import root.
// The directory's base name doubles as the remote dataset identifier.
type Dataset struct {
	// ID is the dataset identifier (the directory's base name).
	ID string

	// Dir is the filesystem path to the dataset directory.
	Dir string
}

// DescriptorPath returns the path of the dataset's JSON descriptor,
// <dir>/<id>.dataset.json. The descriptor is required for sync.
func (d Dataset) DescriptorPath() string {
	return filepath.Join(d.Dir, d.ID+".dataset.json")
}

// DataFilePath returns the path of the dataset's data file for the
// given kind, <dir>/<id>.<kind>.ndjson. Data files are optional.
func (d Dataset) DataFilePath(kind FileKind) string {
	return filepath.Join(d.Dir, d.ID+"."+string(kind)+".ndjson")
}
