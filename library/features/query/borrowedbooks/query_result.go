package borrowedbooks

import "github.com/AntonStoeckl/lending-catalog-go/library/shared/core"

// Result holds the books currently held by one borrower.
type Result struct {
	BorrowerID string
	Category   core.Category
	Books      []core.Book
	Count      int
}
