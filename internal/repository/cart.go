package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
)

// CartRepository keeps one cart per session.
type CartRepository interface {
	// GetCart returns the session's cart, or an empty cart when none is stored.
	GetCart(ctx context.Context, sessionID string) (pos.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart pos.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

var (
	_ CartRepository = (*redisCartRepository)(nil)
	_ CartRepository = (*memoryCartRepository)(nil)
)

type redisCartRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisCartRepository stores carts as JSON under cart:<session id>. Every
// save extends the ttl.
func NewRedisCartRepository(rdb redis.Cmdable, ttl time.Duration) CartRepository {
	return &redisCartRepository{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *redisCartRepository) GetCart(ctx context.Context, sessionID string) (pos.Cart, error) {
	b, err := r.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return pos.Cart{}, nil
	}
	if err != nil {
		return pos.Cart{}, fmt.Errorf("redis get cart: %w", err)
	}

	var cart pos.Cart
	if err := json.Unmarshal(b, &cart); err != nil {
		return pos.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart, nil
}

func (r *redisCartRepository) SaveCart(ctx context.Context, sessionID string, cart pos.Cart) error {
	if cart.IsEmpty() && cart.Discount.IsZero() {
		return r.DeleteCart(ctx, sessionID)
	}

	b, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.rdb.Set(ctx, cartKey(sessionID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (r *redisCartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

type memoryCartRepository struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	carts map[string]memoryCart
}

type memoryCart struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCartRepository keeps carts in process memory. Carts are stored as
// JSON snapshots so callers never share line slices.
func NewMemoryCartRepository(ttl time.Duration) CartRepository {
	return &memoryCartRepository{
		ttl:   ttl,
		now:   time.Now,
		carts: make(map[string]memoryCart),
	}
}

func (r *memoryCartRepository) GetCart(_ context.Context, sessionID string) (pos.Cart, error) {
	r.mu.Lock()
	entry, ok := r.carts[sessionID]
	if ok && r.ttl > 0 && !r.now().Before(entry.expiresAt) {
		delete(r.carts, sessionID)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return pos.Cart{}, nil
	}

	var cart pos.Cart
	if err := json.Unmarshal(entry.data, &cart); err != nil {
		return pos.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart, nil
}

func (r *memoryCartRepository) SaveCart(ctx context.Context, sessionID string, cart pos.Cart) error {
	if cart.IsEmpty() && cart.Discount.IsZero() {
		return r.DeleteCart(ctx, sessionID)
	}

	b, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = memoryCart{data: b, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *memoryCartRepository) DeleteCart(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
