// Package listborrowers implements the List Borrowers query use case.
//
// Students and pupils are returned in separate lists, each in registration order, including their held sets.
package listborrowers
