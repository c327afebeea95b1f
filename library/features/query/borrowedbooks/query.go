package borrowedbooks

import "strings"

const (
	queryType = "BorrowedBooks"
)

// Query represents the intent to list the books a borrower holds.
type Query struct {
	BorrowerID string
}

// BuildQuery creates a new Query with the provided borrower identifier.
func BuildQuery(borrowerID string) Query {
	return Query{
		BorrowerID: strings.TrimSpace(borrowerID),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
