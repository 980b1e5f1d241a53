package main

import (
	"github.com/krancour/compute/sdk/compute"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
)

func getClient(c *cli.Context) (compute.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving configuration")
	}
	project := config.Project
	if c.IsSet(flagProject) {
		project = c.String(flagProject)
	}
	return newClient(
		config.APIAddress,
		project,
		config.APIToken,
		config.Insecure || c.Bool(flagInsecure),
	), nil
}

func newClient(
	apiAddress string,
	project string,
	apiToken string,
	insecure bool,
) compute.Client {
	var tokenSource oauth2.TokenSource
	if apiToken != "" {
		tokenSource = oauth2.StaticTokenSource(
			&oauth2.Token{
				AccessToken: apiToken,
				TokenType:   "Bearer",
			},
		)
	}
	return compute.NewClient(
		project,
		&compute.ClientOptions{
			APIAddress:               apiAddress,
			TokenSource:              tokenSource,
			AllowInsecureConnections: insecure,
		},
	)
}
