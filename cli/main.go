package main

import (
	"fmt"
	"os"

	"github.com/krancour/compute/internal/signals"
	"github.com/krancour/compute/internal/version"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "compute"
	app.Usage = "Inspect Compute Engine projects"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		cliFlagInsecure,
	}
	app.Commands = []*cli.Command{
		loginCommand,
		logoutCommand,
		projectCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
