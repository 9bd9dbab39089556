package main

import (
	"context"
	"fmt"
	"os/exec"
)

type dependency struct {
	binary   string
	hint     string
	optional bool
}

var dependencies = []dependency{
	{binary: "go", hint: "https://go.dev/dl/"},
	{binary: "docker", hint: "https://docs.docker.com/get-docker/ (needed for integration tests)", optional: true},
	{binary: "psql", hint: "PostgreSQL client tools", optional: true},
}

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Checking dependencies...")

	hasError := false
	for _, dep := range dependencies {
		path, err := exec.LookPath(dep.binary)
		switch {
		case err == nil:
			PrintSuccess("%s: %s", dep.binary, path)
		case dep.optional:
			PrintWarning("%s not found (optional): %s", dep.binary, dep.hint)
		default:
			PrintError("%s not found: %s", dep.binary, dep.hint)
			hasError = true
		}
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}
	return nil
}
