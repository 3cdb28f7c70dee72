// Package mocks holds hand-written test doubles for the external
// collaborators.
package mocks

import (
	"context"
	"fmt"

	"github.com/leftovercook/backend/internal/types"
)

// MockGenerator is a scriptable stand-in for the generation gateway.
// Each GenerateRecipes call pops the next batch; when Err is set every
// call fails with it.
type MockGenerator struct {
	Batches   [][]types.Recipe
	Err       error
	ChatReply string

	Calls        int
	LastCriteria *types.GenerationCriteria
}

func (m *MockGenerator) GenerateRecipes(ctx context.Context, criteria *types.GenerationCriteria) ([]types.Recipe, error) {
	m.Calls++
	m.LastCriteria = criteria
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Batches) == 0 {
		return nil, fmt.Errorf("mock generator has no batches left")
	}
	batch := m.Batches[0]
	m.Batches = m.Batches[1:]
	return batch, nil
}

func (m *MockGenerator) Chat(ctx context.Context, recipe *types.Recipe, history []types.ChatMessage) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.ChatReply, nil
}
