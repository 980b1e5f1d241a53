package compute

import (
	"context"

	"github.com/krancour/compute/sdk/async"
	"github.com/krancour/compute/sdk/internal/restmachinery"
	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
)

// ErrNoProjectID is returned by operations on a Project whose Client was
// created without a project ID. Without one, the request path would address
// the projects collection instead of a project.
var ErrNoProjectID = errors.New("no project ID was specified")

// projectMethods enumerates the generic operations enabled for Projects.
var projectMethods = meta.NewMethodSet(meta.MethodGet, meta.MethodGetMetadata)

// Project is a handle on the Compute Engine project a Client is scoped to.
// The project is the root resource beneath the Client, so it contributes
// neither a base URL nor an ID of its own to request paths; the project ID is
// carried entirely by the parent Client.
//
// A Project is immutable and safe for concurrent use.
type Project struct {
	parent        Client
	serviceObject *restmachinery.ServiceObject
	metadata      meta.Metadata
}

// NewProject returns a handle on the project parent is scoped to.
func NewProject(parent Client) *Project {
	return newProject(parent, projectMethods)
}

func newProject(parent Client, methods meta.MethodSet) *Project {
	return &Project{
		parent: parent,
		serviceObject: restmachinery.NewServiceObject(
			parent.baseClient(),
			restmachinery.ServiceObjectConfig{
				Parent:  parent,
				BaseURL: "",
				ID:      "",
				Methods: methods,
			},
		),
	}
}

// Parent returns the Client the Project belongs to.
func (p *Project) Parent() Client {
	return p.parent
}

// ID returns the Project's own identifier, which is always empty.
func (p *Project) ID() string {
	return p.serviceObject.ID()
}

// BaseURL returns the Project's own path prefix, which is always empty.
func (p *Project) BaseURL() string {
	return p.serviceObject.BaseURL()
}

// ProjectID returns the identifier of the project, as carried by the parent
// Client.
func (p *Project) ProjectID() string {
	return p.parent.ProjectID()
}

// Methods returns the set of generic operations the Project supports.
func (p *Project) Methods() meta.MethodSet {
	return p.serviceObject.Methods()
}

// Path returns the request path of the Project.
func (p *Project) Path() string {
	return p.serviceObject.Path()
}

// Metadata returns the metadata retrieved by the Get call that produced this
// handle. It is nil for handles obtained any other way.
func (p *Project) Metadata() meta.Metadata {
	return p.metadata
}

// Get retrieves the Project. It returns a new handle on the same Project,
// carrying the retrieved metadata, along with the raw API response. The
// receiver is not modified.
func (p *Project) Get(
	ctx context.Context,
) (*Project, *meta.APIResponse, error) {
	if p.ProjectID() == "" {
		return nil, nil, ErrNoProjectID
	}
	metadata := meta.Metadata{}
	resp, err := p.serviceObject.Get(ctx, &metadata)
	if err != nil {
		return nil, nil, err
	}
	return &Project{
		parent:        p.parent,
		serviceObject: p.serviceObject,
		metadata:      metadata,
	}, resp, nil
}

// GetMetadata retrieves the Project's metadata along with the raw API
// response.
func (p *Project) GetMetadata(
	ctx context.Context,
) (meta.Metadata, *meta.APIResponse, error) {
	if p.ProjectID() == "" {
		return nil, nil, ErrNoProjectID
	}
	return p.serviceObject.GetMetadata(ctx)
}

// GetAsync is the deferred form of Get.
func (p *Project) GetAsync(ctx context.Context) *async.Future[*Project] {
	return async.Go[*Project](ctx, p.Get)
}

// GetMetadataAsync is the deferred form of GetMetadata.
func (p *Project) GetMetadataAsync(
	ctx context.Context,
) *async.Future[meta.Metadata] {
	return async.Go[meta.Metadata](ctx, p.GetMetadata)
}
