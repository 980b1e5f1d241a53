package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/krancour/compute/internal/version"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()

	glog.Infof(
		"Starting fake Compute API server -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	config, err := GetConfigFromEnvironment()
	if err != nil {
		glog.Fatal(err)
	}

	backend, err := getBackendFromConfig(config)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Fake Compute API server is listening on 0.0.0.0:%d", config.Port)
	glog.Fatal(
		http.ListenAndServe(
			fmt.Sprintf(":%d", config.Port),
			h2c.NewHandler(backend.Handler(), &http2.Server{}),
		),
	)
}
