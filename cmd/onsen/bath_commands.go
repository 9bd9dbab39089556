package main

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/app"
)

type NearbyCommand struct{}

func (c *NearbyCommand) Name() string        { return "nearby" }
func (c *NearbyCommand) Usage() string       { return "nearby <lat> <lng>" }
func (c *NearbyCommand) Description() string { return "List onsens around a location" }

func (c *NearbyCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 2 {
		return usageError(c)
	}
	origin, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	return a.Nearby(ctx, origin)
}

// BatheCommand drives one bathing session through its subcommands
type BatheCommand struct{}

func (c *BatheCommand) Name() string  { return "bathe" }
func (c *BatheCommand) Usage() string { return "bathe start <lat> <lng> [place_id] | status | finish | cancel" }
func (c *BatheCommand) Description() string {
	return "Start, check, finish or cancel a bath"
}

func (c *BatheCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return usageError(c)
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "start":
		if len(rest) < 2 || len(rest) > 3 {
			return usageError(c)
		}
		origin, err := parsePoint(rest[0], rest[1])
		if err != nil {
			return err
		}
		placeID := ""
		if len(rest) == 3 {
			placeID = rest[2]
		}
		return a.StartBath(ctx, origin, placeID)
	case "status":
		return a.BathStatus(ctx)
	case "finish":
		return a.FinishBath(ctx)
	case "cancel":
		return a.CancelBath(ctx)
	default:
		return usageError(c)
	}
}
