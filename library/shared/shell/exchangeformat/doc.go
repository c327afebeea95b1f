// Package exchangeformat implements the two durable exchange formats of the lending catalog.
//
// The text format holds books only, one "title,label" line per book. It does not escape anything, so a
// title containing a comma or a newline does not survive a round trip.
//
// The snapshot format is a versioned BSON document with the top-level groups books, students, and
// pupils. Borrowers carry the ISBNs of their held books, so holdings are re-linked by natural key
// when a snapshot is imported.
package exchangeformat
