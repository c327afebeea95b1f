package exporttext

const (
	queryType = "ExportText"
)

// Query represents the intent to export the books as text.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
