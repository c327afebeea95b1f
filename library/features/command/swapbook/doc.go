// Package swapbook implements exchanging a held book for another one in a single transaction.
//
// A swap either returns the old book and lends the new one, or changes nothing at all.
// Swapping a book for itself is a successful no-op.
package swapbook
