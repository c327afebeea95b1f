// Package memengine provides an in-memory implementation of catalogstore.Store.
//
// Transactions are serialized by a single writer lock. Each transaction works on a private copy
// of the catalog which replaces the shared state only when the unit of work returns without error,
// so a failed transaction leaves no trace. Views work on a copy taken under a read lock.
//
// The engine keeps insertion order for books and borrowers, so listings and exports are
// deterministic. It is used by the test suites and for running the catalog without a database.
package memengine
