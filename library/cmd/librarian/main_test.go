package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

func Test_Run_Classify(t *testing.T) {
	// arrange
	var stdout, stderr bytes.Buffer

	// act
	code := run(t.Context(), []string{"classify", "21234"}, nil, &stdout, &stderr)

	// assert
	require.Equal(t, exitOK, code, stderr.String())

	var result map[string]string
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "student", result["Category"])
}

func Test_Run_ExitCodes(t *testing.T) {
	testCases := []struct {
		name         string
		args         []string
		expectedCode int
	}{
		{name: "no command", args: nil, expectedCode: exitRefused},
		{name: "unknown command", args: []string{"lend"}, expectedCode: exitRefused},
		{name: "invalid identifier", args: []string{"classify", "123"}, expectedCode: exitRefused},
		{name: "missing argument", args: []string{"classify"}, expectedCode: exitRefused},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			var stdout, stderr bytes.Buffer

			// act
			code := run(context.Background(), tc.args, nil, &stdout, &stderr)

			// assert
			assert.Equal(t, tc.expectedCode, code)
			assert.Empty(t, stdout.String())
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func Test_ReportError(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "refusal", err: core.ErrOutOfStock, expectedCode: exitRefused},
		{name: "invalid input", err: catalogstore.ErrBorrowerNotFound, expectedCode: exitRefused},
		{name: "malformed snapshot", err: exchangeformat.ErrMalformedSnapshot, expectedCode: exitRefused},
		{name: "usage", err: fmt.Errorf("%w: bad flag", errUsage), expectedCode: exitRefused},
		{name: "storage", err: errors.Join(catalogstore.ErrQueryingFailed, errors.New("connection reset")), expectedCode: exitFailure},
		{name: "canceled", err: context.Canceled, expectedCode: exitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			var stderr bytes.Buffer

			// act
			code := reportError(&stderr, tc.err)

			// assert
			assert.Equal(t, tc.expectedCode, code)
			assert.Contains(t, stderr.String(), tc.err.Error())
		})
	}
}

func Test_SubCommands_CoverEveryOperation(t *testing.T) {
	expected := []string{
		"schema", "classify", "borrow", "return", "swap", "return-all",
		"add-book", "register-student", "register-pupil",
		"list-books", "list-borrowers", "borrowed-books",
		"export-text", "import-text", "export-snapshot", "import-snapshot", "drop-all",
	}

	commands := subCommands()

	assert.Len(t, commands, len(expected))
	for _, name := range expected {
		assert.Contains(t, commands, name)
	}

	assert.False(t, commands["classify"].needsStore)
}
