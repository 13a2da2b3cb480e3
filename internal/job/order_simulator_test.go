package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
)

// seedRepoStub implements domain.SeedRepository. Only the methods the
// simulator touches are pluggable.
type seedRepoStub struct {
	randomProducts func(ctx context.Context, n int) ([]domain.Product, error)
	insertOrders   func(ctx context.Context, orders []domain.Order) error
}

func (s *seedRepoStub) CountProducts(ctx context.Context) (int64, error) { return 0, nil }

func (s *seedRepoStub) RandomProducts(ctx context.Context, n int) ([]domain.Product, error) {
	if s.randomProducts == nil {
		return nil, nil
	}
	return s.randomProducts(ctx, n)
}

func (s *seedRepoStub) BulkUpsertProducts(ctx context.Context, products []domain.Product) error {
	return nil
}

func (s *seedRepoStub) InsertOrders(ctx context.Context, orders []domain.Order) error {
	if s.insertOrders == nil {
		return nil
	}
	return s.insertOrders(ctx, orders)
}

func (s *seedRepoStub) InsertReviews(ctx context.Context, reviews []domain.Review) error {
	return nil
}

func (s *seedRepoStub) ResetDemoData(ctx context.Context) error { return nil }

// fakeLocker implements locker.DistributedLocker in memory.
type fakeLocker struct {
	mu       sync.Mutex
	deny     bool
	acquires int
	releases int
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
	return !l.deny, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++
	return nil
}

func (l *fakeLocker) counts() (acquires, releases int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquires, l.releases
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Wireless Headphones", Price: 149.99},
		{ID: 2, Name: "Wireless Mouse", Price: 29.99},
		{ID: 3, Name: "Espresso Machine", Price: 349.00},
	}
}

func TestOrderSimulator_InsertsOrdersOnTick(t *testing.T) {
	inserted := make(chan []domain.Order, 1)
	repo := &seedRepoStub{
		randomProducts: func(ctx context.Context, n int) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			select {
			case inserted <- orders:
			default:
			}
			return nil
		},
	}

	sim := NewOrderSimulator(repo, SimulatorConfig{
		Interval:      10 * time.Millisecond,
		Timeout:       time.Second,
		OrdersPerTick: 3,
	}, zap.NewNop(), &fakeLocker{})

	sim.Start()
	defer sim.Stop()

	select {
	case orders := <-inserted:
		require.Len(t, orders, 3)
		validIDs := map[int64]bool{1: true, 2: true, 3: true}
		for _, o := range orders {
			assert.True(t, validIDs[o.ProductID], "order must reference a sampled product")
			assert.GreaterOrEqual(t, o.Quantity, 1)
			assert.LessOrEqual(t, o.Quantity, 3)
			assert.Greater(t, o.TotalPrice, 0.0)
			assert.WithinDuration(t, time.Now(), o.CreatedAt, time.Minute, "simulated orders are timestamped now")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no orders were inserted within 2s")
	}
}

func TestOrderSimulator_SkipsTickWhenLockHeld(t *testing.T) {
	inserts := make(chan struct{}, 16)
	repo := &seedRepoStub{
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			inserts <- struct{}{}
			return nil
		},
	}
	lock := &fakeLocker{deny: true}

	sim := NewOrderSimulator(repo, SimulatorConfig{
		Interval:      10 * time.Millisecond,
		Timeout:       time.Second,
		OrdersPerTick: 3,
	}, zap.NewNop(), lock)

	sim.Start()
	time.Sleep(100 * time.Millisecond)
	sim.Stop()

	acquires, _ := lock.counts()
	assert.Greater(t, acquires, 0, "the simulator should keep trying for the lock")
	assert.Empty(t, inserts, "a denied lock must suppress order generation")
}

func TestOrderSimulator_ReleasesLockOnFailure(t *testing.T) {
	failed := make(chan struct{}, 1)
	repo := &seedRepoStub{
		randomProducts: func(ctx context.Context, n int) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			select {
			case failed <- struct{}{}:
			default:
			}
			return errors.New("deadlock detected")
		},
	}
	lock := &fakeLocker{}

	sim := NewOrderSimulator(repo, SimulatorConfig{
		Interval:      10 * time.Millisecond,
		Timeout:       time.Second,
		OrdersPerTick: 3,
	}, zap.NewNop(), lock)

	sim.Start()

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("insert was never attempted within 2s")
	}
	sim.Stop()

	_, releases := lock.counts()
	assert.Greater(t, releases, 0, "a failed tick should release the lock for retry")
}

func TestOrderSimulator_EmptyCatalog(t *testing.T) {
	sampled := make(chan struct{}, 1)
	inserts := make(chan struct{}, 16)
	repo := &seedRepoStub{
		randomProducts: func(ctx context.Context, n int) ([]domain.Product, error) {
			select {
			case sampled <- struct{}{}:
			default:
			}
			return nil, nil
		},
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			inserts <- struct{}{}
			return nil
		},
	}

	sim := NewOrderSimulator(repo, SimulatorConfig{
		Interval:      10 * time.Millisecond,
		Timeout:       time.Second,
		OrdersPerTick: 3,
	}, zap.NewNop(), &fakeLocker{})

	sim.Start()

	select {
	case <-sampled:
	case <-time.After(2 * time.Second):
		t.Fatal("catalog was never sampled within 2s")
	}
	sim.Stop()

	assert.Empty(t, inserts, "an empty catalog yields no orders")
}
