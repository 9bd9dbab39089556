package main

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/app"
	"github.com/osse101/onsenkatsu/internal/cli"
)

// Command is one `onsen` subcommand
type Command interface {
	Name() string
	Usage() string
	Description() string
	Run(ctx context.Context, a *app.App, args []string) error
}

// Registry holds the onsen subcommands
type Registry = cli.Registry[Command]

func newRegistry() *Registry {
	r := cli.NewRegistry[Command]("onsen")
	r.Register(&LoginCommand{})
	r.Register(&LogoutCommand{})
	r.Register(&WhoamiCommand{})
	r.Register(&SetupCommand{})
	r.Register(&NameCommand{})
	r.Register(&PartnerCommand{})
	r.Register(&HomeCommand{})
	r.Register(&RenameCommand{})
	r.Register(&VisitsCommand{})
	r.Register(&NearbyCommand{})
	r.Register(&BatheCommand{})
	r.Register(&QuestsCommand{})
	r.Register(&QuestCommand{})
	r.Register(&AccessoriesCommand{})
	r.Register(&EquipCommand{})
	r.Register(&UnequipCommand{})
	r.Register(&DebugCommand{})
	return r
}
