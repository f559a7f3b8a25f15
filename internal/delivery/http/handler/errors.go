package handler

import (
	"errors"
	"net/http"

	"github.com/user/openperf-gateway/internal/repository"
	"github.com/user/openperf-gateway/internal/usecase"
)

// errBadRequest marks malformed requests that never reach the use case.
var errBadRequest = errors.New("bad request")

// GatewayError is the HTTP-facing form of a failed request.
type GatewayError struct {
	Status  int
	Message string
}

// mapError is the only place a GatewayError is built. Validation failures are
// 400; everything else, engine failures included, is 500.
func mapError(err error) GatewayError {
	var callErr *repository.CallError
	switch {
	case errors.Is(err, usecase.ErrInvalidPage), errors.Is(err, errBadRequest):
		return GatewayError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.As(err, &callErr):
		return GatewayError{Status: http.StatusInternalServerError, Message: callErr.Message}
	case errors.Is(err, usecase.ErrEmptyPageID):
		return GatewayError{Status: http.StatusInternalServerError, Message: usecase.ErrEmptyPageID.Error()}
	case errors.Is(err, usecase.ErrInvalidResponse):
		return GatewayError{Status: http.StatusInternalServerError, Message: usecase.ErrInvalidResponse.Error()}
	default:
		return GatewayError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
}
