package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/model"
)

// CartFacade exposes the subset of application functionality required by the sweeper.
type CartFacade interface {
	StaleCarts(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error)
	AbandonCartByID(ctx context.Context, cartID string) error
}

// CartSweeper periodically abandons active carts that have been idle for
// longer than the configured TTL. Checkout itself stays synchronous; the
// sweeper only drives the explicit cart abandonment action in the background.
type CartSweeper struct {
	facade        CartFacade
	sweepInterval time.Duration
	cartTTL       time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.Cart
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCartSweeper constructs the sweeper worker pool.
func NewCartSweeper(facade CartFacade, sweepInterval, cartTTL time.Duration, batchSize, workers int, logger *slog.Logger) *CartSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &CartSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		cartTTL:       cartTTL,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Cart, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *CartSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *CartSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *CartSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *CartSweeper) fetchAndDispatch(ctx context.Context) {
	idleSince := time.Now().Add(-s.cartTTL)
	carts, err := s.facade.StaleCarts(ctx, idleSince, s.batchSize)
	if err != nil {
		s.logger.Error("fetch stale carts failed", slog.String("error", err.Error()))
		return
	}
	for _, cart := range carts {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- cart:
		}
	}
}

func (s *CartSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case cart, ok := <-s.jobs:
			if !ok {
				return
			}
			if err := s.facade.AbandonCartByID(ctx, cart.ID); err != nil {
				s.logger.Error("abandon stale cart failed",
					slog.String("cart", cart.ID),
					slog.String("error", err.Error()))
				continue
			}
			s.logger.Info("stale cart abandoned",
				slog.String("cart", cart.ID),
				slog.String("user", cart.UserID))
		}
	}
}
