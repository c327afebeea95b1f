// Package listbooks implements the List Books query use case.
//
// This is a read-only operation returning every book of the catalog in catalog order.
package listbooks
