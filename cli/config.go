package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/compute/internal/file"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const envconfigPrefix = "COMPUTE"

var configSchemaLoader = gojsonschema.NewStringLoader(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["apiAddress", "project"],
	"additionalProperties": false,
	"properties": {
		"apiAddress": {
			"type": "string",
			"pattern": "^https?://"
		},
		"project": {
			"type": "string",
			"pattern": "^[a-z][-a-z0-9]{4,28}[a-z0-9]$"
		},
		"apiToken": {
			"type": "string"
		},
		"insecure": {
			"type": "boolean"
		}
	}
}`)

// config is persisted to ~/.compute/config. Any field may be overridden with
// a COMPUTE_* environment variable.
type config struct {
	APIAddress string `json:"apiAddress" envconfig:"API_ADDRESS"`
	Project    string `json:"project" envconfig:"PROJECT"`
	APIToken   string `json:"apiToken,omitempty" envconfig:"API_TOKEN"`
	Insecure   bool   `json:"insecure,omitempty" envconfig:"INSECURE"`
}

func getConfig() (*config, error) {
	computeHome, err := getComputeHome()
	if err != nil {
		return nil, errors.Wrapf(err, "error finding compute home")
	}
	computeConfigFile := path.Join(computeHome, "config")

	config := &config{}
	if file.Exists(computeConfigFile) {
		var configBytes []byte
		if configBytes, err = ioutil.ReadFile(computeConfigFile); err != nil {
			return nil, errors.Wrapf(
				err,
				"error reading compute config file at %s",
				computeConfigFile,
			)
		}
		if err = validateConfig(configBytes); err != nil {
			return nil, errors.Wrapf(
				err,
				"compute config file at %s is invalid",
				computeConfigFile,
			)
		}
		if err = json.Unmarshal(configBytes, config); err != nil {
			return nil, errors.Wrapf(
				err,
				"error parsing compute config file at %s",
				computeConfigFile,
			)
		}
	}

	if err = envconfig.Process(envconfigPrefix, config); err != nil {
		return nil, errors.Wrap(err, "error reading configuration from environment")
	}

	if config.APIAddress == "" || config.Project == "" {
		return nil, errors.Errorf(
			"no compute configuration was found at %s; please use "+
				"`compute login` to continue\n",
			computeConfigFile,
		)
	}

	return config, nil
}

func validateConfig(configBytes []byte) error {
	result, err := gojsonschema.Validate(
		configSchemaLoader,
		gojsonschema.NewBytesLoader(configBytes),
	)
	if err != nil {
		return errors.Wrap(err, "error validating configuration")
	}
	if !result.Valid() {
		verrStrs := make([]string, len(result.Errors()))
		for i, verr := range result.Errors() {
			verrStrs[i] = verr.String()
		}
		return errors.New(strings.Join(verrStrs, "; "))
	}
	return nil
}

func saveConfig(config *config) error {
	computeHome, err := getComputeHome()
	if err != nil {
		return errors.Wrapf(err, "error finding compute home")
	}
	if _, err = os.Stat(computeHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of compute home at %s",
				computeHome,
			)
		}
		// The directory doesn't exist-- create it
		if err = os.MkdirAll(computeHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating compute home at %s",
				computeHome,
			)
		}
	}
	computeConfigFile := path.Join(computeHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err = validateConfig(configBytes); err != nil {
		return err
	}
	// The token is a credential
	if err :=
		ioutil.WriteFile(computeConfigFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", computeConfigFile)
	}
	return nil
}

func deleteConfig() error {
	computeHome, err := getComputeHome()
	if err != nil {
		return errors.Wrapf(err, "error finding compute home")
	}
	computeConfigFile := path.Join(computeHome, "config")

	if err := os.Remove(computeConfigFile); err != nil {
		return errors.Wrap(err, "error deleting configuration")
	}

	return nil
}

func getComputeHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}

	return path.Join(homeDir, ".compute"), nil
}
