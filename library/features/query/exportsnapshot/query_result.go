package exportsnapshot

import "github.com/AntonStoeckl/lending-catalog-go/catalogstore"

// Result holds the encoded snapshot and the number of records per group in it.
type Result struct {
	Snapshot []byte
	Counts   catalogstore.Counts
}
