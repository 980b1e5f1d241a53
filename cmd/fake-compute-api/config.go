package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/compute/sdk/compute/computetest"
	"github.com/pkg/errors"
)

const envconfigPrefix = "FAKE_COMPUTE_API"

// Config represents configuration for the fake Compute API server.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`
	// ProjectsFile is a YAML or JSON document mapping project IDs to the
	// representations served for them.
	ProjectsFile string `envconfig:"PROJECTS_FILE"`
	// APIToken, if set, is the only bearer token the server accepts.
	APIToken string `envconfig:"API_TOKEN"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return Config{
		Port: 8080,
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults()
	err := envconfig.Process(envconfigPrefix, &c)
	return c, err
}

func getBackendFromConfig(config Config) (*computetest.Backend, error) {
	backend := computetest.NewBackend()
	backend.RequireToken(config.APIToken)
	if config.ProjectsFile == "" {
		return backend, nil
	}
	projectsBytes, err := ioutil.ReadFile(config.ProjectsFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading projects file %s",
			config.ProjectsFile,
		)
	}
	// YAML is a superset of JSON, so this handles either
	if projectsBytes, err = yaml.YAMLToJSON(projectsBytes); err != nil {
		return nil, errors.Wrapf(
			err,
			"error converting projects file %s to JSON",
			config.ProjectsFile,
		)
	}
	projects := map[string]json.RawMessage{}
	if err = json.Unmarshal(projectsBytes, &projects); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing projects file %s",
			config.ProjectsFile,
		)
	}
	for projectID, projectBytes := range projects {
		if err = backend.PutProject(projectID, projectBytes); err != nil {
			return nil, err
		}
	}
	return backend, nil
}
