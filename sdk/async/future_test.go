package async

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/krancour/compute/sdk/meta"
	"github.com/stretchr/testify/require"
)

var testResponse = &meta.APIResponse{
	StatusCode: http.StatusOK,
	Body:       []byte(`{"id":"proj-1"}`),
}

func TestFutureAwait(t *testing.T) {
	testCases := []struct {
		name       string
		op         Operation[string]
		assertions func(t *testing.T, result string, resp *meta.APIResponse, err error) // nolint: lll
	}{
		{
			name: "success",
			op: func(context.Context) (string, *meta.APIResponse, error) {
				return "proj-1", testResponse, nil
			},
			assertions: func(
				t *testing.T,
				result string,
				resp *meta.APIResponse,
				err error,
			) {
				require.NoError(t, err)
				require.Equal(t, "proj-1", result)
				require.Equal(t, testResponse, resp)
			},
		},
		{
			name: "failure discards partial results",
			op: func(context.Context) (string, *meta.APIResponse, error) {
				return "partial", testResponse, &meta.ErrAuthorization{
					ErrAPI: meta.NewErrAPI(http.StatusForbidden, ""),
				}
			},
			assertions: func(
				t *testing.T,
				result string,
				resp *meta.APIResponse,
				err error,
			) {
				require.IsType(t, &meta.ErrAuthorization{}, err)
				require.Empty(t, result)
				require.Nil(t, resp)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			future := Go(context.Background(), testCase.op)
			result, resp, err := future.Await(context.Background())
			testCase.assertions(t, result, resp, err)
			// Awaiting again yields the same outcome
			result, resp, err = future.Await(context.Background())
			testCase.assertions(t, result, resp, err)
		})
	}
}

func TestFutureAwaitCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	future := Go[string](
		context.Background(),
		func(context.Context) (string, *meta.APIResponse, error) {
			<-release
			return "proj-1", testResponse, nil
		},
	)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	result, resp, err := future.Await(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
	require.Empty(t, result)
	require.Nil(t, resp)
}

func TestFutureThen(t *testing.T) {
	future := Go[string](
		context.Background(),
		func(context.Context) (string, *meta.APIResponse, error) {
			return "proj-1", testResponse, nil
		},
	)
	calls := make(chan struct{}, 2)
	var (
		gotErr    error
		gotResult string
		gotResp   *meta.APIResponse
	)
	future.Then(func(err error, result string, resp *meta.APIResponse) {
		gotErr, gotResult, gotResp = err, result, resp
		calls <- struct{}{}
	})
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "callback was never invoked")
	}
	// Exactly once
	select {
	case <-calls:
		require.FailNow(t, "callback was invoked more than once")
	case <-time.After(50 * time.Millisecond):
	}
	require.NoError(t, gotErr)
	require.Equal(t, "proj-1", gotResult)
	require.Equal(t, testResponse, gotResp)
}

func TestFutureThenAndAwaitAgree(t *testing.T) {
	future := Go[string](
		context.Background(),
		func(context.Context) (string, *meta.APIResponse, error) {
			return "proj-1", testResponse, nil
		},
	)
	var wg sync.WaitGroup
	wg.Add(1)
	var cbResult string
	var cbResp *meta.APIResponse
	future.Then(func(err error, result string, resp *meta.APIResponse) {
		defer wg.Done()
		require.NoError(t, err)
		cbResult, cbResp = result, resp
	})
	result, resp, err := future.Await(context.Background())
	require.NoError(t, err)
	wg.Wait()
	require.Equal(t, result, cbResult)
	require.Equal(t, resp, cbResp)
	<-future.Done()
}
