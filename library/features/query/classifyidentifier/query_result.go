package classifyidentifier

import "github.com/AntonStoeckl/lending-catalog-go/library/shared/core"

// Result is the category the identifier belongs to.
type Result struct {
	Identifier string
	Category   core.Category
}
