package restmachinery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krancour/compute/sdk/meta"
	"github.com/stretchr/testify/require"
)

type testParent struct {
	baseURL string
	id      string
}

func (t testParent) BaseURL() string {
	return t.baseURL
}

func (t testParent) ID() string {
	return t.id
}

func TestServiceObjectPath(t *testing.T) {
	testCases := []struct {
		name         string
		config       ServiceObjectConfig
		expectedPath string
	}{
		{
			name: "root resource beneath parent",
			config: ServiceObjectConfig{
				Parent: testParent{baseURL: "projects", id: "bluebook"},
			},
			expectedPath: "projects/bluebook",
		},
		{
			name: "child resource beneath parent",
			config: ServiceObjectConfig{
				Parent:  testParent{baseURL: "projects", id: "bluebook"},
				BaseURL: "zones",
				ID:      "us-east1-b",
			},
			expectedPath: "projects/bluebook/zones/us-east1-b",
		},
		{
			name: "no parent",
			config: ServiceObjectConfig{
				BaseURL: "projects",
				ID:      "bluebook",
			},
			expectedPath: "projects/bluebook",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			so := NewServiceObject(testClient(testAPIAddress, nil), testCase.config)
			require.Equal(t, testCase.expectedPath, so.Path())
			require.Equal(t, testCase.config.BaseURL, so.BaseURL())
			require.Equal(t, testCase.config.ID, so.ID())
			require.Equal(t, testCase.config.Parent, so.Parent())
		})
	}
}

func TestServiceObjectGet(t *testing.T) {
	const body = `{"id":"proj-1","name":"bluebook"}`
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/projects/bluebook", r.URL.Path)
				fmt.Fprint(w, body)
			},
		),
	)
	defer server.Close()
	so := NewServiceObject(
		testClient(server.URL, nil),
		ServiceObjectConfig{
			Parent:  testParent{baseURL: "projects", id: "bluebook"},
			Methods: meta.NewMethodSet(meta.MethodGet),
		},
	)
	respObj := struct {
		Name string `json:"name"`
	}{}
	resp, err := so.Get(context.Background(), &respObj)
	require.NoError(t, err)
	require.Equal(t, "bluebook", respObj.Name)
	require.Equal(t, body, string(resp.Body))

	// Metadata isn't enabled
	_, _, err = so.GetMetadata(context.Background())
	require.IsType(t, &meta.ErrNotSupported{}, err)
}

func TestServiceObjectGetMetadata(t *testing.T) {
	const body = `{"id":"proj-1"}`
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/projects/bluebook", r.URL.Path)
				fmt.Fprint(w, body)
			},
		),
	)
	defer server.Close()
	so := NewServiceObject(
		testClient(server.URL, nil),
		ServiceObjectConfig{
			Parent:  testParent{baseURL: "projects", id: "bluebook"},
			Methods: meta.NewMethodSet(meta.MethodGetMetadata),
		},
	)
	metadata, resp, err := so.GetMetadata(context.Background())
	require.NoError(t, err)
	require.Equal(t, meta.Metadata{"id": "proj-1"}, metadata)
	require.Equal(t, body, string(resp.Body))

	// Get isn't enabled
	_, err = so.Get(context.Background(), nil)
	require.IsType(t, &meta.ErrNotSupported{}, err)
	require.Contains(t, err.Error(), "get")
}

func TestServiceObjectUnsupportedMethodMakesNoRequest(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Fail(t, "no request should have been made")
			},
		),
	)
	defer server.Close()
	so := NewServiceObject(
		testClient(server.URL, nil),
		ServiceObjectConfig{
			Parent: testParent{baseURL: "projects", id: "bluebook"},
		},
	)
	_, err := so.Get(context.Background(), nil)
	require.IsType(t, &meta.ErrNotSupported{}, err)
	_, _, err = so.GetMetadata(context.Background())
	require.IsType(t, &meta.ErrNotSupported{}, err)
}
