package restmachinery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
)

// Parent is anything a ServiceObject can be addressed beneath.
type Parent interface {
	// BaseURL returns the path prefix the parent contributes.
	BaseURL() string
	// ID returns the parent's own identifier.
	ID() string
}

// ServiceObjectConfig describes a ServiceObject's identity and capabilities.
type ServiceObjectConfig struct {
	// Parent is the object the resource is addressed beneath. It may be nil.
	Parent Parent
	// BaseURL is the path segment the resource contributes beneath its parent.
	BaseURL string
	// ID identifies the resource beneath BaseURL.
	ID string
	// Methods enumerates the generic operations the resource supports.
	Methods meta.MethodSet
}

// ServiceObject implements the generic operations common to all remote
// resources. Specialized resource types hold a ServiceObject and delegate to
// it. A ServiceObject is immutable.
type ServiceObject struct {
	client  *BaseClient
	parent  Parent
	baseURL string
	id      string
	methods meta.MethodSet
}

// NewServiceObject returns a ServiceObject that dispatches requests through
// client.
func NewServiceObject(
	client *BaseClient,
	config ServiceObjectConfig,
) *ServiceObject {
	return &ServiceObject{
		client:  client,
		parent:  config.Parent,
		baseURL: config.BaseURL,
		id:      config.ID,
		methods: config.Methods,
	}
}

// Parent returns the object the resource is addressed beneath.
func (s *ServiceObject) Parent() Parent {
	return s.parent
}

// BaseURL returns the path segment the resource contributes beneath its
// parent.
func (s *ServiceObject) BaseURL() string {
	return s.baseURL
}

// ID returns the resource's identifier.
func (s *ServiceObject) ID() string {
	return s.id
}

// Methods returns the set of generic operations the resource supports.
func (s *ServiceObject) Methods() meta.MethodSet {
	return s.methods
}

// Path returns the request path of the resource, relative to the API address.
func (s *ServiceObject) Path() string {
	if s.parent == nil {
		return ComposePath(s.baseURL, s.id)
	}
	return ComposePath(s.parent.BaseURL(), s.parent.ID(), s.baseURL, s.id)
}

// Get retrieves the resource, unpacking the response body into respObj if it
// is non-nil.
func (s *ServiceObject) Get(
	ctx context.Context,
	respObj interface{},
) (*meta.APIResponse, error) {
	if err := s.requireMethod(meta.MethodGet); err != nil {
		return nil, err
	}
	return s.client.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        s.Path(),
			SuccessCode: http.StatusOK,
			RespObj:     respObj,
		},
	)
}

// GetMetadata retrieves the resource's metadata.
func (s *ServiceObject) GetMetadata(
	ctx context.Context,
) (meta.Metadata, *meta.APIResponse, error) {
	if err := s.requireMethod(meta.MethodGetMetadata); err != nil {
		return nil, nil, err
	}
	resp, err := s.client.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        s.Path(),
			SuccessCode: http.StatusOK,
		},
	)
	if err != nil {
		return nil, nil, err
	}
	metadata := meta.Metadata{}
	if err = json.Unmarshal(resp.Body, &metadata); err != nil {
		return nil, nil, errors.Wrap(err, "error unmarshaling response body")
	}
	return metadata, resp, nil
}

func (s *ServiceObject) requireMethod(m meta.Method) error {
	if s.methods.Has(m) {
		return nil
	}
	return &meta.ErrNotSupported{
		Details: fmt.Sprintf(
			"operation %q is not supported by resource %q",
			m,
			s.Path(),
		),
	}
}
