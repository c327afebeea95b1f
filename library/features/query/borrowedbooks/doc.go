// Package borrowedbooks implements the Borrowed Books query use case.
//
// It returns the books one borrower currently holds, in ascending ISBN order.
package borrowedbooks
