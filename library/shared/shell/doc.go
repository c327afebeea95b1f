// Package shell provides the infrastructure layer shared by all feature slices of the lending catalog.
//
// It contains the handler result and retry plumbing, the error classes the presentation layer maps
// to exit codes or responses, logging and metrics helpers for command and query handlers, and the
// translation between catalog store records and the domain model in core.
//
// In Hexagonal Architecture terminology, this would be called the 'adapters' layer.
package shell
