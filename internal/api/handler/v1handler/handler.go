// Package v1handler implements the version 1 HTTP API on top of the scan
// engine, the background queue and the scan history.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"handlescan/internal/scanner"
	"handlescan/pkg/logger"
	"handlescan/pkg/serrors"
	"handlescan/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Deps are the services used by the handlers. Queue and History are nil when
// the database is disabled; the endpoints that need them answer UNAVAILABLE.
type Deps struct {
	Scanner scanner.Scanner
	Queue   scanner.Queue
	History storage.ScanStorage
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes registers the v1 endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/providers", h.ListProviders)
	r.Get("/scans/{identifier}", h.GetScan)
	r.Post("/batches", h.CreateBatch)
	r.Get("/history/{identifier}", h.ListHistory)
	r.Get("/history/{identifier}/latest", h.GetLatestScan)
}

// ErrorResponse is the body and status code of a failed request.
type ErrorResponse struct {
	StatusCode int
	Response   struct {
		Code    string
		Message string
	}
}

// Encode writes the error body as a JSON object.
func (e *ErrorResponse) Encode(enc *jx.Encoder) {
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("code", func(enc *jx.Encoder) { enc.Str(e.Response.Code) })
		enc.Field("message", func(enc *jx.Encoder) { enc.Str(e.Response.Message) })
	})
}

var kindStatus = map[serrors.Kind]struct { //nolint: gochecknoglobals
	status  int
	message string
}{
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrUnavailable:  {http.StatusServiceUnavailable, "service unavailable"},
}

// NewError maps err to an API error. Errors without an API-facing kind are
// logged and reported as INTERNAL without details.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	res := &ErrorResponse{}

	kind := serrors.KindOf(err)
	mapped, ok := kindStatus[kind]
	if !ok {
		logger.Error(ctx, "request failed", zap.Error(err))
		res.StatusCode = http.StatusInternalServerError
		res.Response.Code = serrors.ErrInternal.Error()
		res.Response.Message = "internal error"

		return res
	}

	res.StatusCode = mapped.status
	res.Response.Code = kind.Error()
	res.Response.Message = mapped.message
	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" {
		res.Response.Message = se.Message()
	}
	logger.Debug(ctx, "request rejected", zap.Error(err))

	return res
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, res.Encode)
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
