package test

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
)

// SweeperFacadeStub is a synchronized stub for the cart sweeper facade.
type SweeperFacadeStub struct {
	sync.Mutex

	Batches   [][]model.Cart
	Abandoned []string

	StaleErr   error
	AbandonErr error

	calls int
}

func (s *SweeperFacadeStub) StaleCarts(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error) {
	s.Lock()
	defer s.Unlock()
	if s.StaleErr != nil {
		return nil, s.StaleErr
	}
	if s.calls >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.calls]
	s.calls++
	return batch, nil
}

func (s *SweeperFacadeStub) AbandonCartByID(ctx context.Context, cartID string) error {
	s.Lock()
	defer s.Unlock()
	if s.AbandonErr != nil {
		return s.AbandonErr
	}
	s.Abandoned = append(s.Abandoned, cartID)
	return nil
}
