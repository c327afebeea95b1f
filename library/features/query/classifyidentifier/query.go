package classifyidentifier

import "strings"

const (
	queryType = "ClassifyIdentifier"
)

// Query represents the intent to classify an identifier.
type Query struct {
	Identifier string
}

// BuildQuery creates a new Query with the provided identifier.
func BuildQuery(identifier string) Query {
	return Query{
		Identifier: strings.TrimSpace(identifier),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
