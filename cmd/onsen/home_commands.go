package main

import (
	"context"
	"strings"

	"github.com/osse101/onsenkatsu/internal/app"
)

type SetupCommand struct{}

func (c *SetupCommand) Name() string        { return "setup" }
func (c *SetupCommand) Usage() string       { return "setup <your-name> <partner-name>" }
func (c *SetupCommand) Description() string { return "Set your name and create your companion" }

func (c *SetupCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 2 {
		return usageError(c)
	}
	if err := a.SetName(ctx, args[0]); err != nil {
		return err
	}
	return a.ChoosePartner(ctx, args[1])
}

type NameCommand struct{}

func (c *NameCommand) Name() string        { return "name" }
func (c *NameCommand) Usage() string       { return "name <your-name>" }
func (c *NameCommand) Description() string { return "Set your display name" }

func (c *NameCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return usageError(c)
	}
	return a.SetName(ctx, strings.Join(args, " "))
}

type PartnerCommand struct{}

func (c *PartnerCommand) Name() string        { return "partner" }
func (c *PartnerCommand) Usage() string       { return "partner <partner-name>" }
func (c *PartnerCommand) Description() string { return "Name and create your companion" }

func (c *PartnerCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return usageError(c)
	}
	return a.ChoosePartner(ctx, strings.Join(args, " "))
}

type HomeCommand struct{}

func (c *HomeCommand) Name() string        { return "home" }
func (c *HomeCommand) Usage() string       { return "home" }
func (c *HomeCommand) Description() string { return "Show your companion" }

func (c *HomeCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Home(ctx)
}

type RenameCommand struct{}

func (c *RenameCommand) Name() string        { return "rename" }
func (c *RenameCommand) Usage() string       { return "rename <partner-name>" }
func (c *RenameCommand) Description() string { return "Rename your companion" }

func (c *RenameCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return usageError(c)
	}
	return a.Rename(ctx, strings.Join(args, " "))
}

type VisitsCommand struct{}

func (c *VisitsCommand) Name() string        { return "visits" }
func (c *VisitsCommand) Usage() string       { return "visits" }
func (c *VisitsCommand) Description() string { return "List your recent baths" }

func (c *VisitsCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Visits(ctx)
}
