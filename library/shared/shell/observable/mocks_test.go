package observable_test

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

type mockCommand struct {
	Value string
}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCommandResult struct {
	shell.HandlerResult
	Value int
}

type mockHandler struct {
	result mockCommandResult
	err    error
	calls  []mockCommand
	mu     sync.Mutex
}

func newMockHandler(result mockCommandResult, err error) *mockHandler {
	return &mockHandler{result: result, err: err}
}

func (h *mockHandler) Handle(_ context.Context, command mockCommand) (mockCommandResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *mockHandler) GetCalls() []mockCommand {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]mockCommand(nil), h.calls...)
}

type mockQuery struct{}

func (q mockQuery) QueryType() string {
	return "TestQuery"
}

type mockQueryResult struct {
	Value string
}

type mockQueryHandler struct {
	result mockQueryResult
	err    error
	calls  int
}

func newMockQueryHandler(result mockQueryResult, err error) *mockQueryHandler {
	return &mockQueryHandler{result: result, err: err}
}

func (h *mockQueryHandler) Handle(_ context.Context, _ mockQuery) (mockQueryResult, error) {
	h.calls++

	return h.result, h.err
}
