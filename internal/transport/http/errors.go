package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"melodie/internal/registry"
	"melodie/pkg/certificate"
	"melodie/pkg/midds"
	"melodie/pkg/midds/codec"
	"melodie/pkg/midds/party"
	"melodie/pkg/midds/release"
	"melodie/pkg/midds/track"
	"melodie/pkg/midds/work"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// writeError centralizes domain error translation to HTTP responses so all
// handlers share one JSON error envelope. Internal errors carry no
// description.
func writeError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func classify(err error) (int, errorBody) {
	switch {
	case errors.Is(err, codec.ErrUnknownKind):
		return http.StatusBadRequest, errorBody{Error: "unknown_kind", Description: err.Error()}
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound, errorBody{Error: "not_found", Description: "record not found"}
	case errors.Is(err, registry.ErrConflict):
		return http.StatusConflict, errorBody{Error: "conflict", Description: "record already exists"}
	}

	var (
		workErr    *work.Error
		trackErr   *track.Error
		releaseErr *release.Error
		partyErr   *party.Error
		valErr     *midds.ValidationError
		pdfErr     *certificate.Error
	)
	switch {
	case errors.As(err, &workErr),
		errors.As(err, &trackErr),
		errors.As(err, &releaseErr),
		errors.As(err, &partyErr),
		errors.As(err, &valErr):
		return http.StatusUnprocessableEntity, errorBody{Error: "validation_failed", Description: err.Error()}
	case errors.As(err, &pdfErr):
		return http.StatusUnprocessableEntity, errorBody{Error: "certificate_failed", Description: err.Error()}
	}
	return http.StatusInternalServerError, errorBody{Error: "internal"}
}

func writeBadRequest(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorBody{Error: "invalid_request", Description: description})
}
