// Package errors provides the structured error type used at the service and
// transport boundaries. The draft engine itself uses plain sentinel errors;
// everything that crosses into an HTTP response goes through this package so
// the status code is derived from a single Code.
package errors
