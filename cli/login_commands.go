package main

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/krancour/compute/sdk/compute"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Save the API address, project, and token used by other commands",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage:   "Use the specified API address",
			Value:   compute.DefaultAPIAddress,
		},
		&cli.StringFlag{
			Name:     flagProject,
			Aliases:  []string{"p"},
			Usage:    "Scope all commands to the specified project (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagToken,
			Aliases: []string{"t"},
			Usage: "Authenticate with the specified OAuth2 access token; if " +
				"omitted, you will be prompted for it",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Forget the saved API address, project, and token",
	Action: logout,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	project := c.String(flagProject)
	token := strings.TrimSpace(c.String(flagToken))
	insecure := c.Bool(flagInsecure)

	if token == "" {
		if err := survey.AskOne(
			&survey.Password{
				Message: "Access token?",
			},
			&token,
			survey.WithValidator(survey.Required),
		); err != nil {
			return errors.Wrap(err, "error reading access token")
		}
		token = strings.TrimSpace(token)
	}

	// Fail fast on bad credentials or a bad project rather than on the next
	// command.
	if _, _, err := newClient(address, project, token, insecure).Project().
		GetMetadata(c.Context); err != nil {
		return errors.Wrapf(err, "error verifying access to project %q", project)
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
			Project:    project,
			APIToken:   token,
			Insecure:   insecure,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("Logged in to project %q.\n", project)

	return nil
}

func logout(c *cli.Context) error {
	if err := deleteConfig(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
