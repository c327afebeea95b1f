// Package returnallbooks implements returning every book a borrower holds in a single transaction.
package returnallbooks
