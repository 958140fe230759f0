package service

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/llm"
)

// MockAggregator mocks the search aggregator
type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Search(ctx context.Context, query domain.TravelQuery) (*domain.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}

// MockGenerator mocks the language generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Name() string {
	return "mock"
}

func (m *MockGenerator) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// blockingAggregator parks every Search call until released, so tests can
// hold a search in flight deterministically
type blockingAggregator struct {
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32
	result  *domain.SearchResult
}

func newBlockingAggregator(result *domain.SearchResult) *blockingAggregator {
	return &blockingAggregator{
		release: make(chan struct{}),
		started: make(chan struct{}, 8),
		result:  result,
	}
}

func (b *blockingAggregator) Search(ctx context.Context, query domain.TravelQuery) (*domain.SearchResult, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	res := *b.result
	res.Query = query
	return &res, nil
}
