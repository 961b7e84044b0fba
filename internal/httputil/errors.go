package httputil

import (
	"net/http"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/logging"
)

const internalErrorMessage = "something went wrong, please try again later"

// StatusFor maps an error kind to its HTTP status and error code
func StatusFor(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest, CodeBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized, CodeUnauthenticated
	case apperr.KindConflict:
		return http.StatusConflict, CodeConflict
	case apperr.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	case apperr.KindInternal:
		return http.StatusInternalServerError, CodeInternalError
	}
	return http.StatusInternalServerError, CodeInternalError
}

// WriteError translates err into a JSON error response.
// Internal errors are logged with the request logger and their detail is withheld.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	status, code := StatusFor(e.Kind)

	if e.Kind == apperr.KindInternal {
		logging.GetLoggerFromContext(r.Context()).Error("request failed", "error", err.Error())
		RespondJSON(w, ErrorResponse{Error: internalErrorMessage, Code: code}, status)
		return
	}

	RespondJSON(w, ErrorResponse{Error: e.Message, Code: code, Field: e.Field}, status)
}
