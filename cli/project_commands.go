package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/krancour/compute/sdk/compute"
	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"k8s.io/apimachinery/pkg/util/duration"
)

var projectCommand = &cli.Command{
	Name:  "project",
	Usage: "Inspect the project",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve the project",
			Flags: []cli.Flag{
				cliFlagProject,
				cliFlagOutput,
			},
			Action: projectGet,
		},
		{
			Name:  "metadata",
			Usage: "Retrieve the project's common instance metadata",
			Flags: []cli.Flag{
				cliFlagProject,
				cliFlagOutput,
				cliFlagKey,
			},
			Action: projectMetadata,
		},
	},
}

func projectGet(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting compute client")
	}

	project, _, err := client.Project().Get(c.Context)
	if err != nil {
		return err
	}

	return writeProject(os.Stdout, project.Metadata(), output, time.Now())
}

func projectMetadata(c *cli.Context) error {
	output := c.String(flagOutput)
	key := c.String(flagKey)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting compute client")
	}

	metadata, _, err := client.Project().GetMetadata(c.Context)
	if err != nil {
		return err
	}

	info, err := compute.ProjectInfoFromMetadata(metadata)
	if err != nil {
		return err
	}

	if key != "" {
		value, ok := info.InstanceMetadataValue(key)
		if !ok {
			return errors.Errorf(
				"project %q has no instance metadata key %q",
				client.ProjectID(),
				key,
			)
		}
		fmt.Println(value)
		return nil
	}

	return writeInstanceMetadata(os.Stdout, info, output)
}

func writeProject(
	w io.Writer,
	metadata meta.Metadata,
	output string,
	now time.Time,
) error {
	switch strings.ToLower(output) {
	case "table":
		info, err := compute.ProjectInfoFromMetadata(metadata)
		if err != nil {
			return err
		}
		table := uitable.New()
		table.AddRow("NAME", "ID", "DESCRIPTION", "AGE")
		var age string
		if created := info.Created(); created != nil {
			age = duration.ShortHumanDuration(now.Sub(*created))
		}
		table.AddRow(info.Name, info.ID, info.Description, age)
		fmt.Fprintln(w, table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(metadata)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project operation",
			)
		}
		fmt.Fprintln(w, string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(metadata, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project operation",
			)
		}
		fmt.Fprintln(w, string(prettyJSON))
	}

	return nil
}

func writeInstanceMetadata(
	w io.Writer,
	info compute.ProjectInfo,
	output string,
) error {
	var items []compute.InstanceMetadataItem
	if info.CommonInstanceMetadata != nil {
		items = info.CommonInstanceMetadata.Items
	}

	switch strings.ToLower(output) {
	case "table":
		if len(items) == 0 {
			fmt.Fprintln(w, "No instance metadata found.")
			return nil
		}
		table := uitable.New()
		table.MaxColWidth = 80
		table.AddRow("KEY", "VALUE")
		for _, item := range items {
			table.AddRow(item.Key, item.Value)
		}
		fmt.Fprintln(w, table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(info.CommonInstanceMetadata)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project metadata operation",
			)
		}
		fmt.Fprintln(w, string(yamlBytes))

	case "json":
		prettyJSON, err :=
			json.MarshalIndent(info.CommonInstanceMetadata, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project metadata operation",
			)
		}
		fmt.Fprintln(w, string(prettyJSON))
	}

	return nil
}
