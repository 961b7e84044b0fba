package httputil

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternalError      = "INTERNAL_ERROR"
)
