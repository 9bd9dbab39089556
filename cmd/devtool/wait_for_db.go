package main

import (
	"context"
	"fmt"
	"time"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Waiting for database...")

	var lastErr error
	for i := 0; i < waitMaxRetries; i++ {
		pool, err := connect(ctx)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				PrintSuccess("Database is ready")
				return nil
			}
		}
		lastErr = err

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitMaxRetries, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitRetryInterval):
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", waitMaxRetries, lastErr)
}
