package main

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/osse101/onsenkatsu/internal/app"
)

type QuestsCommand struct{}

func (c *QuestsCommand) Name() string        { return "quests" }
func (c *QuestsCommand) Usage() string       { return "quests [--filter TEXT]" }
func (c *QuestsCommand) Description() string { return "Show the stamp rally" }

func (c *QuestsCommand) Run(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("filter", "", "fuzzy match on quest names")
	if err := fs.Parse(args); err != nil {
		return usageError(c)
	}
	if *filter == "" && fs.NArg() > 0 {
		*filter = strings.Join(fs.Args(), " ")
	}
	return a.Quests(ctx, *filter)
}

type QuestCommand struct{}

func (c *QuestCommand) Name() string        { return "quest" }
func (c *QuestCommand) Usage() string       { return "quest <id>" }
func (c *QuestCommand) Description() string { return "Show one quest and its onsens" }

func (c *QuestCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return usageError(c)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return a.QuestDetail(ctx, id)
}

type AccessoriesCommand struct{}

func (c *AccessoriesCommand) Name() string        { return "accessories" }
func (c *AccessoriesCommand) Usage() string       { return "accessories" }
func (c *AccessoriesCommand) Description() string { return "List accessories and which you own" }

func (c *AccessoriesCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Accessories(ctx)
}

type EquipCommand struct{}

func (c *EquipCommand) Name() string        { return "equip" }
func (c *EquipCommand) Usage() string       { return "equip <accessory-id>" }
func (c *EquipCommand) Description() string { return "Equip an owned accessory" }

func (c *EquipCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return usageError(c)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return a.Equip(ctx, id)
}

type UnequipCommand struct{}

func (c *UnequipCommand) Name() string        { return "unequip" }
func (c *UnequipCommand) Usage() string       { return "unequip" }
func (c *UnequipCommand) Description() string { return "Take off the equipped accessory" }

func (c *UnequipCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Unequip(ctx)
}

type DebugCommand struct{}

func (c *DebugCommand) Name() string        { return "debug" }
func (c *DebugCommand) Usage() string {
	return "debug [grant <exp> <happiness> | grant-accessory <id> | roll-accessory | complete <quest-id>]"
}
func (c *DebugCommand) Description() string { return "Inspect client state or grant stats and rewards" }

func (c *DebugCommand) Run(ctx context.Context, a *app.App, args []string) error {
	switch {
	case len(args) == 0:
		return a.Debug(ctx)
	case len(args) == 3 && args[0] == "grant":
		exp, err := parseInt("exp", args[1])
		if err != nil {
			return err
		}
		happiness, err := parseInt("happiness", args[2])
		if err != nil {
			return err
		}
		return a.DebugGrant(ctx, exp, happiness)
	case len(args) == 2 && args[0] == "grant-accessory":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.DebugGrantAccessory(ctx, id)
	case len(args) == 1 && args[0] == "roll-accessory":
		return a.DebugRollAccessory(ctx)
	case len(args) == 2 && args[0] == "complete":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.DebugCompleteQuest(ctx, id)
	default:
		return usageError(c)
	}
}
