// Package domain defines the core business entities for the library.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: A catalogued book with its stored artifact keys
//   - ValidationResult: The tagged outcome of classifying an upload
//   - Session / RequestInfo: Identity and locale for a request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
