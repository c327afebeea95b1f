// Package classifyidentifier implements the Classify Identifier query use case.
//
// It derives the borrower category from the shape of an identifier alone and never reads the catalog.
package classifyidentifier
