package main

import (
	"context"
	"fmt"

	"github.com/osse101/onsenkatsu/internal/config"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + env + db)"
}

func (c *DoctorCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	depsCmd := &CheckDepsCommand{}
	if err := depsCmd.Run(ctx, nil); err != nil {
		PrintError("Dependencies check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Dependencies OK")
	}

	if _, err := config.Load(); err != nil {
		PrintError("Configuration invalid: %v", err)
		hasError = true
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		PrintError("Environment check failed: %v", err)
		hasError = true
	}
	for _, w := range warnings {
		PrintWarning("%s", w)
	}
	if err == nil {
		PrintSuccess("Environment OK")
	}

	dbCmd := &CheckDBCommand{}
	if err := dbCmd.Run(ctx, nil); err != nil {
		PrintError("Database check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Database OK")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
