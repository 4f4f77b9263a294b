package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/mitchellh/cli"

	"github.com/hashicorp/hcensor/command"
	"github.com/hashicorp/hcensor/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// A .env file is optional; when present it supplies LOG_LEVEL and cache
	// credentials without touching the ambient environment.
	_ = godotenv.Load()

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("hcensor", version.GetVersion().SemanticVersion())
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run":     command.RunCommandFactory(ui),
		"word":    command.WordCommandFactory(ui),
		"version": command.VersionCommandFactory(ui),
	}

	rc, err := c.Run()
	if err != nil {
		hclog.L().Error("Error executing CLI", "error", err)
	}

	return rc
}
