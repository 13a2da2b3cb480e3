// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/seed"
	"ecommerce-search-service/pkg/locker"
)

// OrderSimulator writes a trickle of synthetic orders against the
// seeded catalog so the analytics endpoints keep moving between
// reseeds. Distributed locking ensures only one instance generates
// orders at a time.
type OrderSimulator struct {
	repo          domain.SeedRepository
	gen           *seed.Generator
	interval      time.Duration
	timeout       time.Duration
	ordersPerTick int
	logger        *zap.Logger
	locker        locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SimulatorConfig holds order simulator configuration.
type SimulatorConfig struct {
	Interval      time.Duration
	Timeout       time.Duration
	OrdersPerTick int
}

// NewOrderSimulator creates a new OrderSimulator with distributed
// locking support.
func NewOrderSimulator(
	repo domain.SeedRepository,
	cfg SimulatorConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *OrderSimulator {
	return &OrderSimulator{
		repo:          repo,
		gen:           seed.NewGenerator(time.Now().UnixNano()),
		interval:      cfg.Interval,
		timeout:       cfg.Timeout,
		ordersPerTick: cfg.OrdersPerTick,
		logger:        logger,
		locker:        locker,
	}
}

// Start begins the background simulation loop.
func (s *OrderSimulator) Start() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting order simulator",
		zap.Duration("interval", s.interval),
		zap.Int("orders_per_tick", s.ordersPerTick),
	)

	s.wg.Add(1)
	go s.run()
}

// Stop gracefully stops the simulator.
func (s *OrderSimulator) Stop() {
	s.logger.Info("stopping order simulator")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("order simulator stopped")
}

// run is the main loop of the simulator.
func (s *OrderSimulator) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeTick()
		}
	}
}

// executeTick generates one batch of orders with distributed locking
// and timeout.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate batches
//   - Failure: Lock released immediately to allow retry by another instance
func (s *OrderSimulator) executeTick() {
	const lockKey = "simulator:orders:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is simulating orders, skipping tick")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	count, err := s.generateOrders(ctx)
	if err != nil {
		// Release lock immediately on error (allow immediate retry)
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after simulation error", zap.Error(relErr))
		}
		s.logger.Warn("order simulation failed, lock released for retry", zap.Error(err))

		return
	}

	// Lock expires naturally after interval (cooldown period)
	s.logger.Info("order simulation tick completed",
		zap.Int("orders", count),
		zap.Duration("cooldown", s.interval),
	)
}

// generateOrders picks random products and inserts fresh orders for
// them, timestamped now.
func (s *OrderSimulator) generateOrders(ctx context.Context) (int, error) {
	products, err := s.repo.RandomProducts(ctx, s.ordersPerTick)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		s.logger.Debug("catalog is empty, nothing to simulate")

		return 0, nil
	}

	orders := s.gen.Orders(products, s.ordersPerTick, 0)
	if err := s.repo.InsertOrders(ctx, orders); err != nil {
		return 0, err
	}

	return len(orders), nil
}
