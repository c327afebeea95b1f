package classifyidentifier

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// QueryHandler classifies identifiers.
type QueryHandler struct{}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler() QueryHandler {
	return QueryHandler{}
}

// Handle returns core.ErrInvalidIdentifier or core.ErrUnknownCategory if the identifier cannot be classified.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	category, err := core.Classify(query.Identifier)
	if err != nil {
		return Result{}, err
	}

	return Result{Identifier: query.Identifier, Category: category}, nil
}
