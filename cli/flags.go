package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagInsecure = "insecure"
	flagKey      = "key"
	flagOutput   = "output"
	flagProject  = "project"
	flagServer   = "server"
	flagToken    = "token"
)

var (
	cliFlagInsecure = &cli.BoolFlag{
		Name:    flagInsecure,
		Aliases: []string{"k"},
		Usage:   "Allow insecure API server connections when using TLS",
	}
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
	// No short form; -k is the global --insecure
	cliFlagKey = &cli.StringFlag{
		Name:  flagKey,
		Usage: "Print only the value of the specified metadata key",
	}
	cliFlagProject = &cli.StringFlag{
		Name:    flagProject,
		Aliases: []string{"p"},
		Usage: "Use the specified project instead of the one saved by " +
			"`compute login`",
	}
)

func validateOutputFormat(output string) error {
	switch strings.ToLower(output) {
	case "table":
	case "yaml":
	case "json":
	default:
		return errors.Errorf("unknown output format %q", output)
	}
	return nil
}
