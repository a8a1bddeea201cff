package httptransport

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"melodie/internal/platform/middleware"
	"melodie/internal/registry"
	"melodie/internal/sdk"
	"melodie/pkg/certificate"
	"melodie/pkg/midds/codec"
	"melodie/pkg/platform/audit"
)

const maxBodyBytes = 1 << 20 // JSON payloads are small; cap at 1 MiB

// Handler is the thin HTTP layer. It delegates to the SDK adapter and the
// registry service without embedding business logic.
type Handler struct {
	sdk      *sdk.Adapter
	registry *registry.Service
	audit    *audit.Publisher
	logger   *slog.Logger
}

func NewHandler(adapter *sdk.Adapter, reg *registry.Service, publisher *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{sdk: adapter, registry: reg, audit: publisher, logger: logger}
}

type validateResponse struct {
	Kind   string `json:"kind"`
	Bytes  string `json:"bytes"` // base64 kind-framed SCALE payload
	Digest string `json:"digest"`
}

// HandleValidate handles POST /v1/midds/{kind}/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := chi.URLParam(r, "kind")

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeBadRequest(w, "unreadable request body")
		return
	}

	framed, err := h.sdk.ValidateMIDDS(ctx, kind, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Type:      audit.EventMiddsValidated,
		Kind:      kind,
		RequestID: middleware.GetRequestID(ctx),
		Outcome:   "ok",
	})
	writeJSON(w, http.StatusOK, validateResponse{
		Kind:   kind,
		Bytes:  base64.StdEncoding.EncodeToString(framed),
		Digest: codec.DigestHex(framed),
	})
}

type certificateRequest struct {
	Title         string            `json:"title"`
	AssetFilename string            `json:"asset_filename"`
	Hash          string            `json:"hash,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Creators      []creatorSnapshot `json:"creators"`
}

type creatorSnapshot struct {
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
	IPI      string   `json:"ipi,omitempty"`
	ISNI     string   `json:"isni,omitempty"`
}

// HandleCertificate handles POST /v1/certificate and streams the PDF.
func (h *Handler) HandleCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req certificateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	data := certificate.Data{
		Title:         req.Title,
		AssetFilename: req.AssetFilename,
		Hash:          req.Hash,
		Timestamp:     req.Timestamp,
	}
	for _, c := range req.Creators {
		data.Creators = append(data.Creators, certificate.Creator{
			Fullname: c.Fullname,
			Email:    c.Email,
			Roles:    c.Roles,
			IPI:      c.IPI,
			ISNI:     c.ISNI,
		})
	}

	out, err := h.sdk.GenerateCertificate(ctx, data)
	if err != nil {
		writeError(w, err)
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Type:      audit.EventCertificateIssued,
		RequestID: middleware.GetRequestID(ctx),
		Outcome:   "ok",
	})
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// HandleRegister handles POST /v1/registry/{kind}: validate then persist.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := chi.URLParam(r, "kind")

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeBadRequest(w, "unreadable request body")
		return
	}

	framed, err := h.sdk.ValidateMIDDS(ctx, kind, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	record, err := h.registry.Register(ctx, framed, middleware.GetClientID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "record registration failed",
			"request_id", middleware.GetRequestID(ctx),
			"kind", kind,
			"error", err,
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(record))
}

// HandleGetRecord handles GET /v1/registry/{kind}/{id}.
func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := codec.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid record id")
		return
	}

	record, err := h.registry.Get(r.Context(), kind, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(record))
}

type recordResponse struct {
	Kind         string    `json:"kind"`
	ID           uint64    `json:"id"`
	Payload      string    `json:"payload"` // base64 kind-framed SCALE payload
	Digest       string    `json:"digest"`
	RegisteredBy string    `json:"registered_by,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toRecordResponse(record registry.Record) recordResponse {
	return recordResponse{
		Kind:         record.Kind.String(),
		ID:           record.ID,
		Payload:      base64.StdEncoding.EncodeToString(record.Payload),
		Digest:       record.Digest,
		RegisteredBy: record.RegisteredBy,
		RegisteredAt: record.RegisteredAt,
	}
}

// HandleVersion handles GET /v1/version.
func (h *Handler) HandleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.sdk.SdkVersion()})
}

// HandleHealthz handles GET /healthz.
func (h *Handler) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
