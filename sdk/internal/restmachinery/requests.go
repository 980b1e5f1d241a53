package restmachinery

// OutboundRequest represents a single API call.
type OutboundRequest struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	ReqBodyObj  interface{}
	// SuccessCode is the only status code treated as success. If zero, any
	// 2xx status is.
	SuccessCode int
	// RespObj, if non-nil, is populated from the response body.
	RespObj interface{}
}
