package listborrowers

import "github.com/AntonStoeckl/lending-catalog-go/library/shared/core"

// Result holds all registered borrowers, grouped by category.
type Result struct {
	Students []core.Student
	Pupils   []core.Pupil
	Count    int
}
