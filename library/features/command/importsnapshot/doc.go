// Package importsnapshot implements the import of a complete binary catalog snapshot.
//
// The snapshot is validated as a whole before anything is written. Books are upserted by ISBN first,
// then every borrower is upserted by identifier and its held set is rebuilt against the book table.
// Each record is written in its own transaction, so a storage failure leaves the records before it imported.
package importsnapshot
