package meta

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Metadata represents the metadata of a remote resource exactly as the API
// returned it. No fields are added, removed, or normalized by the client.
type Metadata map[string]interface{}

// Into decodes the Metadata into the object pointed to by obj. This is useful
// for obtaining a typed view of a resource without discarding the raw
// Metadata.
func (m Metadata) Into(obj interface{}) error {
	metadataBytes, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "error marshaling metadata")
	}
	if err = json.Unmarshal(metadataBytes, obj); err != nil {
		return errors.Wrap(err, "error unmarshaling metadata")
	}
	return nil
}

// APIResponse is the raw response to an API call. It accompanies the result of
// every successful operation so callers can inspect anything the client
// didn't interpret.
type APIResponse struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"statusCode"`
	// Header holds the HTTP response headers.
	Header http.Header `json:"header,omitempty"`
	// Body is the response body, byte for byte.
	Body json.RawMessage `json:"body,omitempty"`
}
