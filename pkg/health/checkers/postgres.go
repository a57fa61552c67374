package checkers

import (
	"context"
	"time"

	storage "github.com/artem13815/roster/pkg/storage/postgres"
)

// PostgresChecker pings the record store through the owned client, so the
// readiness endpoint reflects actual connectivity rather than the cached flag.
type PostgresChecker struct {
	client *storage.Client
}

func NewPostgresChecker(client *storage.Client) *PostgresChecker {
	return &PostgresChecker{client: client}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.client.Pool().Ping(ctx)
}
