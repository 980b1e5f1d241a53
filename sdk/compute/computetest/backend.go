// Package computetest provides an in-memory stand-in for the Compute Engine
// API, for use in tests and local development.
package computetest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

// Backend holds the state served by the fake API.
type Backend struct {
	mu       sync.RWMutex
	token    string
	projects map[string]json.RawMessage
	faults   map[string][]int
	requests []*http.Request
}

// NewBackend returns an empty Backend.
func NewBackend() *Backend {
	return &Backend{
		projects: map[string]json.RawMessage{},
		faults:   map[string][]int{},
	}
}

// RequireToken makes the Backend reject any request that doesn't present
// token as a bearer token. An empty token disables the check.
func (b *Backend) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// PutProject stores body as the exact representation of the project with the
// given ID.
func (b *Backend) PutProject(projectID string, body []byte) error {
	if !json.Valid(body) {
		return errors.Errorf("body for project %q is not valid JSON", projectID)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects[projectID] = json.RawMessage(body)
	return nil
}

// PutProjectMetadata stores metadata as the representation of the project
// with the given ID.
func (b *Backend) PutProjectMetadata(
	projectID string,
	metadata meta.Metadata,
) error {
	body, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrapf(err, "error marshaling project %q", projectID)
	}
	return b.PutProject(projectID, body)
}

// InjectFaults queues status codes to be returned, in order, for the next
// requests concerning the given project, before normal service resumes.
func (b *Backend) InjectFaults(projectID string, statusCodes ...int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[projectID] = append(b.faults[projectID], statusCodes...)
}

// Requests returns the requests the Backend has received so far.
func (b *Backend) Requests() []*http.Request {
	b.mu.RLock()
	defer b.mu.RUnlock()
	requests := make([]*http.Request, len(b.requests))
	copy(requests, b.requests)
	return requests
}

// Handler returns an http.Handler serving the fake API. Routes are served
// both at the root and beneath /compute/v1, so either the bare server address
// or one shaped like the real API address may be used.
func (b *Backend) Handler() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	for _, prefix := range []string{"", "/compute/v1"} {
		router.HandleFunc(
			prefix+"/projects/{project}",
			b.getProject,
		).Methods(http.MethodGet)
	}
	router.HandleFunc(
		"/healthz",
		func(w http.ResponseWriter, _ *http.Request) {
			writeAPIResponse(w, http.StatusOK, struct{}{})
		},
	).Methods(http.MethodGet)
	return cors.New(
		cors.Options{
			AllowedMethods: []string{http.MethodGet},
		},
	).Handler(router)
}

// NewServer starts an httptest.Server serving b. Callers must Close it.
func NewServer(b *Backend) *httptest.Server {
	return httptest.NewServer(b.Handler())
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["project"]

	b.mu.Lock()
	b.requests = append(b.requests, r)
	token := b.token
	var fault int
	if faults := b.faults[projectID]; len(faults) > 0 {
		fault, b.faults[projectID] = faults[0], faults[1:]
	}
	body, ok := b.projects[projectID]
	b.mu.Unlock()

	if token != "" &&
		strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != token {
		writeAPIError(
			w,
			http.StatusUnauthorized,
			"Request had invalid authentication credentials.",
			"authError",
		)
		return
	}
	if fault != 0 {
		writeAPIError(w, fault, http.StatusText(fault), "injected")
		return
	}
	if !ok {
		writeAPIError(
			w,
			http.StatusNotFound,
			fmt.Sprintf("The resource 'projects/%s' was not found", projectID),
			"notFound",
		)
		return
	}
	writeAPIResponse(w, http.StatusOK, []byte(body))
}

func writeAPIError(
	w http.ResponseWriter,
	statusCode int,
	message string,
	reason string,
) {
	writeAPIResponse(
		w,
		statusCode,
		map[string]interface{}{
			"error": meta.ErrAPI{
				Code:    statusCode,
				Message: message,
				Errors: []meta.ErrorReason{
					{
						Domain:  "global",
						Reason:  reason,
						Message: message,
					},
				},
			},
		},
	)
}

func writeAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(statusCode)
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			log.Println(errors.Wrap(err, "error marshaling response body"))
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		log.Println(errors.Wrap(err, "error writing response body"))
	}
}
