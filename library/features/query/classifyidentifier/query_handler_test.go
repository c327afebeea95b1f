package classifyidentifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/classifyidentifier"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

func Test_QueryHandler_Handle(t *testing.T) {
	testCases := []struct {
		name             string
		identifier       string
		expectedCategory core.Category
		expectedErr      error
	}{
		{name: "student", identifier: "21234", expectedCategory: core.CategoryStudent},
		{name: "pupil", identifier: "10000", expectedCategory: core.CategoryPupil},
		{name: "surrounding whitespace is trimmed", identifier: " 19999\n", expectedCategory: core.CategoryPupil},
		{name: "unknown prefix", identifier: "31234", expectedErr: core.ErrUnknownCategory},
		{name: "too short", identifier: "2123", expectedErr: core.ErrInvalidIdentifier},
		{name: "too long", identifier: "212345", expectedErr: core.ErrInvalidIdentifier},
		{name: "not digits", identifier: "2a234", expectedErr: core.ErrInvalidIdentifier},
		{name: "empty", identifier: "", expectedErr: core.ErrInvalidIdentifier},
	}

	handler := classifyidentifier.NewQueryHandler()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(t.Context(), classifyidentifier.BuildQuery(tc.identifier))

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedCategory, result.Category)
		})
	}
}
