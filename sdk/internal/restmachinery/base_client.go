package restmachinery

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/krancour/compute/sdk/internal/retries"
	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultMaxAttempts = 3
	defaultMaxBackoff  = 32 * time.Second

	headerRequestID = "X-Request-Id"
)

// APIClientOptions encapsulates optional API client configuration.
type APIClientOptions struct {
	// AllowInsecureConnections indicates whether SSL errors should be ignored.
	// It has no effect when HTTPClient is set.
	AllowInsecureConnections bool
	// HTTPClient, if set, is used instead of a client built by NewBaseClient.
	HTTPClient *http.Client
	// UserAgent is sent with every request.
	UserAgent string
	// RequestsPerSecond, if positive, limits the rate of outbound requests.
	RequestsPerSecond float64
	// MaxAttempts bounds the number of attempts made for a retryable request.
	MaxAttempts int
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
}

// BaseClient provides "API machinery" used by all the specialized API
// clients. Its various functions remove the tedium from common API-related
// operations like executing an HTTP request and unpacking the response body
// into an appropriate object.
type BaseClient struct {
	APIAddress string
	// TokenSource, if non-nil, supplies bearer tokens for every request.
	TokenSource oauth2.TokenSource
	HTTPClient  *http.Client
	UserAgent   string
	// Limiter, if non-nil, is waited on before every attempt.
	Limiter     *rate.Limiter
	MaxAttempts int
	MaxBackoff  time.Duration
}

// NewBaseClient returns a BaseClient for the API at apiAddress.
func NewBaseClient(
	apiAddress string,
	tokenSource oauth2.TokenSource,
	opts *APIClientOptions,
) *BaseClient {
	if opts == nil {
		opts = &APIClientOptions{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: opts.AllowInsecureConnections, // nolint: gosec
				},
			},
		}
	}
	b := &BaseClient{
		APIAddress:  strings.TrimSuffix(apiAddress, "/"),
		TokenSource: tokenSource,
		HTTPClient:  httpClient,
		UserAgent:   opts.UserAgent,
		MaxAttempts: opts.MaxAttempts,
		MaxBackoff:  opts.MaxBackoff,
	}
	if b.MaxAttempts <= 0 {
		b.MaxAttempts = defaultMaxAttempts
	}
	if b.MaxBackoff <= 0 {
		b.MaxBackoff = defaultMaxBackoff
	}
	if opts.RequestsPerSecond > 0 {
		b.Limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return b
}

// BearerTokenAuthHeaders returns the Authorization header for the token
// currently offered by the TokenSource. If there is no TokenSource, no
// headers are returned.
func (b *BaseClient) BearerTokenAuthHeaders() (map[string]string, error) {
	if b.TokenSource == nil {
		return nil, nil
	}
	token, err := b.TokenSource.Token()
	if err != nil {
		return nil, &meta.ErrAuthentication{
			ErrAPI: meta.NewErrAPI(http.StatusUnauthorized, "error obtaining token"),
			Reason: err.Error(),
		}
	}
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token.AccessToken),
	}, nil
}

// ExecuteRequest submits req, retrying transient failures, and unpacks the
// response body into req.RespObj if one was provided.
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
) (*meta.APIResponse, error) {
	var resp *meta.APIResponse
	maxAttempts := b.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if err := retries.ManageRetries(
		ctx,
		fmt.Sprintf("%s %s", req.Method, req.Path),
		maxAttempts,
		b.MaxBackoff,
		func() (bool, error) {
			var err error
			if resp, err = b.SubmitRequest(ctx, req); err != nil {
				return isRetryable(ctx, err), err
			}
			return false, nil
		},
	); err != nil {
		return nil, err
	}
	if req.RespObj != nil {
		if err := json.Unmarshal(resp.Body, req.RespObj); err != nil {
			return nil, errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return resp, nil
}

// SubmitRequest makes a single attempt at req. A non-success status code is
// converted into the most specific error type from the meta package that
// applies.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req OutboundRequest,
) (*meta.APIResponse, error) {
	var reqBodyReader io.Reader
	if req.ReqBodyObj != nil {
		switch rb := req.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequest(
		req.Method,
		fmt.Sprintf("%s/%s", b.APIAddress, req.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.Method,
			req.Path,
		)
	}
	r = r.WithContext(ctx)
	if len(req.QueryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	authHeaders, err := b.BearerTokenAuthHeaders()
	if err != nil {
		return nil, err
	}
	for k, v := range authHeaders {
		r.Header.Add(k, v)
	}
	for k, v := range req.Headers {
		r.Header.Add(k, v)
	}
	if reqBodyReader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json")
	if b.UserAgent != "" {
		r.Header.Set("User-Agent", b.UserAgent)
	}
	r.Header.Set(headerRequestID, uuid.NewV4().String())

	if b.Limiter != nil {
		if err = b.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpResp, err := b.HTTPClient.Do(r)
	if err != nil {
		return nil, &meta.ErrTransport{Err: err}
	}
	defer httpResp.Body.Close()

	bodyBytes, err := ioutil.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &meta.ErrTransport{
			Err: errors.Wrap(err, "error reading response body"),
		}
	}

	if !isSuccess(req.SuccessCode, httpResp.StatusCode) {
		return nil, errorFromResponse(httpResp.StatusCode, bodyBytes)
	}

	return &meta.APIResponse{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       bodyBytes,
	}, nil
}

func isSuccess(successCode, statusCode int) bool {
	if successCode == 0 {
		return statusCode >= 200 && statusCode < 300
	}
	return statusCode == successCode
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if _, ok := errors.Cause(err).(*meta.ErrTransport); ok {
		return true
	}
	switch meta.StatusCode(err) {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// errorFromResponse interprets an error response. The API wraps error
// details in an envelope like:
//
//   {"error":{"code":403,"message":"...","errors":[{"reason":"forbidden"}]}}
//
// A body that isn't such an envelope still yields an error carrying the
// status code.
func errorFromResponse(statusCode int, bodyBytes []byte) error {
	envelope := struct {
		Error *meta.ErrAPI `json:"error"`
	}{}
	apiErr := meta.NewErrAPI(statusCode, "")
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil &&
		envelope.Error != nil {
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		apiErr.Errors = envelope.Error.Errors
	}
	switch statusCode {
	case http.StatusUnauthorized:
		return &meta.ErrAuthentication{ErrAPI: apiErr}
	case http.StatusForbidden:
		return &meta.ErrAuthorization{ErrAPI: apiErr}
	case http.StatusBadRequest:
		details := make([]string, 0, len(apiErr.Errors))
		for _, reason := range apiErr.Errors {
			if reason.Message != "" {
				details = append(details, reason.Message)
			}
		}
		return &meta.ErrBadRequest{ErrAPI: apiErr, Details: details}
	case http.StatusNotFound:
		return &meta.ErrNotFound{ErrAPI: apiErr}
	case http.StatusConflict:
		return &meta.ErrConflict{ErrAPI: apiErr}
	case http.StatusInternalServerError:
		return &meta.ErrInternalServer{ErrAPI: apiErr}
	default:
		return &apiErr
	}
}
