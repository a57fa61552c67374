package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotReady signals that the pool is currently unreachable.
var ErrNotReady = errors.New("postgres is not ready")

// Options управляет установкой соединения при старте и фоновой проверкой.
type Options struct {
	ConnectAttempts int           // bounded startup retries
	ConnectDelay    time.Duration // fixed delay between attempts
	WatchInterval   time.Duration // background ping period
}

func (o *Options) defaults() {
	if o.ConnectAttempts <= 0 {
		o.ConnectAttempts = 5
	}
	if o.ConnectDelay <= 0 {
		o.ConnectDelay = 5 * time.Second
	}
	if o.WatchInterval <= 0 {
		o.WatchInterval = 5 * time.Second
	}
}

// Client owns the pgx pool together with a readiness flag maintained by a
// background watcher. The pool re-establishes connections on its own; the
// watcher only tracks whether the database is reachable so request handling
// can consult a cheap flag instead of pinging.
type Client struct {
	pool  *pgxpool.Pool
	ready atomic.Bool
	done  chan struct{}
}

// Connect opens a pgx pool, retrying a bounded number of times with a fixed
// delay. When every attempt fails the error is returned and the caller is
// expected to exit rather than serve against a broken store.
func Connect(ctx context.Context, dsn string, opts Options) (*Client, error) {
	opts.defaults()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	// Reasonable defaults
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	var pool *pgxpool.Pool
	for attempt := 1; ; attempt++ {
		pool, err = connectOnce(ctx, config)
		if err == nil {
			break
		}
		log.Printf("postgres connect attempt %d/%d: %v", attempt, opts.ConnectAttempts, err)
		if attempt == opts.ConnectAttempts {
			return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", opts.ConnectAttempts, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.ConnectDelay):
		}
	}

	c := &Client{pool: pool, done: make(chan struct{})}
	c.ready.Store(true)
	go c.watch(opts.WatchInterval)
	return c, nil
}

func connectOnce(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (c *Client) watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			err := c.pool.Ping(ctx)
			cancel()
			if err != nil && c.ready.Swap(false) {
				log.Printf("postgres connection lost: %v", err)
			} else if err == nil && !c.ready.Swap(true) {
				log.Printf("postgres connection restored")
			}
		}
	}
}

// Ready consults the readiness flag; it does not touch the network.
func (c *Client) Ready(ctx context.Context) error {
	if !c.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Pool exposes the underlying pool for repositories.
func (c *Client) Pool() *pgxpool.Pool { return c.pool }

func (c *Client) Close() {
	close(c.done)
	c.pool.Close()
}
