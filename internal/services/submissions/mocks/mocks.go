package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/FreightSite/internal/models"
)

type MockInserter struct {
	mock.Mock
}

func (m *MockInserter) Insert(ctx context.Context, table string, row models.Row) (models.Row, error) {
	args := m.Called(ctx, table, row)
	var out models.Row
	if v := args.Get(0); v != nil {
		out = v.(models.Row)
	}
	return out, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	return m.Called(ctx, topic, key, value).Error(0)
}
