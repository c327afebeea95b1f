// Package core contains the pure domain model of the lending catalog.
//
// Books carry a label, borrowers are a tagged variant of Student and Pupil, and the eligibility policy
// decides which borrower may take which book. Identifiers are classified into their borrower category
// by their leading digit. Nothing in this package performs I/O.
//
// Decide functions of the feature slices return a DecisionResult built from the domain events in this
// package, and the shell layer applies those events to the catalog store.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
