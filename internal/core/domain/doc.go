// Package domain defines the core entities of the Histograph importer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Dataset: A dataset directory discovered under an import root
//   - FileKind: The two well-known data file kinds (pits, relations)
//   - Config: Import roots, API endpoint and admin credentials
//   - APIError: A structured registry API failure
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
