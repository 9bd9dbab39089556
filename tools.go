//go:build tools
// +build tools

package tools

// Pins the versions of the linter and the goose CLI used for linting and
// ad-hoc migration authoring. Nothing in the binaries imports these.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
