package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"

	"github.com/osse101/onsenkatsu/internal/app"
)

var (
	stdin     io.Reader = os.Stdin
	promptOut io.Writer = os.Stderr
)

type LoginCommand struct{}

func (c *LoginCommand) Name() string  { return "login" }
func (c *LoginCommand) Usage() string { return "login [--email ADDR] [--oauth]" }
func (c *LoginCommand) Description() string {
	return "Sign in with email and password, or through the browser"
}

func (c *LoginCommand) Run(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")
	oauth := fs.Bool("oauth", false, "sign in with Google in the browser")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		return usageError(c)
	}

	if *oauth {
		return a.LoginWithOAuth(ctx, openBrowser)
	}

	if *email == "" {
		line, err := promptLine(bufio.NewReader(stdin), promptOut, "メールアドレス")
		if err != nil {
			return err
		}
		*email = line
	}
	password, err := promptPassword(promptOut)
	if err != nil {
		return err
	}
	return a.LoginWithPassword(ctx, *email, password)
}

type LogoutCommand struct{}

func (c *LogoutCommand) Name() string        { return "logout" }
func (c *LogoutCommand) Usage() string       { return "logout" }
func (c *LogoutCommand) Description() string { return "Sign out and forget the local session" }

func (c *LogoutCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Logout(ctx)
}

type WhoamiCommand struct{}

func (c *WhoamiCommand) Name() string        { return "whoami" }
func (c *WhoamiCommand) Usage() string       { return "whoami" }
func (c *WhoamiCommand) Description() string { return "Show the signed-in account" }

func (c *WhoamiCommand) Run(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	return a.Whoami(ctx)
}
