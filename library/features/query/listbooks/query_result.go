package listbooks

import "github.com/AntonStoeckl/lending-catalog-go/library/shared/core"

// Result holds all books of the catalog.
type Result struct {
	Books []core.Book
	Count int
}
