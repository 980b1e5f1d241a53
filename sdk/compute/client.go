package compute

import (
	"fmt"
	"net/http"
	"time"

	"github.com/krancour/compute/internal/version"
	"github.com/krancour/compute/sdk/internal/restmachinery"
	"golang.org/x/oauth2"
)

// DefaultAPIAddress is the address of the Compute Engine v1 API.
const DefaultAPIAddress = "https://compute.googleapis.com/compute/v1"

const projectsBaseURL = "projects"

// ClientOptions encapsulates optional client configuration.
type ClientOptions struct {
	// APIAddress overrides DefaultAPIAddress.
	APIAddress string
	// TokenSource supplies bearer tokens for every request. If nil, requests
	// are unauthenticated.
	TokenSource oauth2.TokenSource
	// AllowInsecureConnections indicates whether SSL errors should be ignored.
	AllowInsecureConnections bool
	// HTTPClient, if set, is used for all requests. AllowInsecureConnections
	// is then ignored.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// RequestsPerSecond, if positive, limits the rate of outbound requests.
	RequestsPerSecond float64
	// MaxAttempts bounds the number of attempts made for requests that fail
	// transiently. Defaults to 3.
	MaxAttempts int
	// MaxBackoff caps the delay between attempts. Defaults to 32s.
	MaxBackoff time.Duration
}

// Client is the root of the Compute API client. It carries the identity of
// the project all its resources are scoped to.
type Client interface {
	// ProjectID returns the identifier of the project this client is scoped to.
	ProjectID() string
	// BaseURL returns the path prefix the client contributes to the requests
	// of the resources beneath it.
	BaseURL() string
	// ID returns the identifier the client contributes to the requests of the
	// resources beneath it. This is the project ID.
	ID() string
	// Project returns a handle on the project this client is scoped to.
	Project() *Project

	baseClient() *restmachinery.BaseClient
}

type client struct {
	*restmachinery.BaseClient
	projectID string
}

// NewClient returns a Client scoped to the project identified by projectID.
// An empty projectID yields a Client whose Project refuses to issue requests.
func NewClient(projectID string, opts *ClientOptions) Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	apiAddress := opts.APIAddress
	if apiAddress == "" {
		apiAddress = DefaultAPIAddress
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("krancour-compute-go/%s", version.Version())
	}
	return &client{
		BaseClient: restmachinery.NewBaseClient(
			apiAddress,
			opts.TokenSource,
			&restmachinery.APIClientOptions{
				AllowInsecureConnections: opts.AllowInsecureConnections,
				HTTPClient:               opts.HTTPClient,
				UserAgent:                userAgent,
				RequestsPerSecond:        opts.RequestsPerSecond,
				MaxAttempts:              opts.MaxAttempts,
				MaxBackoff:               opts.MaxBackoff,
			},
		),
		projectID: projectID,
	}
}

func (c *client) ProjectID() string {
	return c.projectID
}

func (c *client) BaseURL() string {
	return projectsBaseURL
}

func (c *client) ID() string {
	return c.projectID
}

func (c *client) Project() *Project {
	return NewProject(c)
}

func (c *client) baseClient() *restmachinery.BaseClient {
	return c.BaseClient
}
