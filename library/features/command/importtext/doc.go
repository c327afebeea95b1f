// Package importtext implements the lossy text import of books.
//
// Each non-blank line holds a title and a label, separated by a comma. A line without a comma is skipped.
// Every book is created in its own transaction with a generated ISBN, author "Unknown", year 1, and one copy.
package importtext
