// Package errors provides the classified error primitives used across docnav.
//
// Build anomalies fall into two groups. Content problems (a malformed header,
// a dangling manifest reference) are never errors: they are recorded in the
// diagnostics collector and the build continues. Errors from this package are
// reserved for conditions that stop a build, such as a missing documentation
// root or an unwritable output artifact.
//
// Example usage:
//
//	err := errors.DocsError("documentation root not found").
//		WithContext("root", root).
//		WithCause(statErr).
//		Build()
package errors
