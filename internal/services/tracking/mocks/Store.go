package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/FreightSite/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	var sh *models.Shipment
	if v := args.Get(0); v != nil {
		sh = v.(*models.Shipment)
	}
	return sh, args.Error(1)
}
