// Package exporttext implements the lossy text export of the catalog.
//
// Only title and label of each book are written, one "title,label" line per book in catalog order.
// Titles are not escaped, so a title containing a comma does not survive a round trip.
package exporttext
