package v1handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"handlescan/internal/scanner"
	"handlescan/pkg/serrors"
	"handlescan/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const (
	// DefaultLimit is the history page size when none is requested.
	DefaultLimit = 20
	// MaxLimit is the largest history page size.
	MaxLimit = 100

	maxBatchBody = 64 << 10
)

// ListProviders returns the enabled providers in probe order.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers := h.deps.Scanner.Providers()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("providers", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, p := range providers {
						e.Obj(func(e *jx.Encoder) {
							e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
							e.Field("url", func(e *jx.Encoder) { e.Str(p.URLTemplate) })
						})
					}
				})
			})
		})
	})
}

// GetScan scans an identifier and returns the result.
//
// Query parameters: cache (default true) allows serving a fresh cached
// result; detach (default false) lets the scan run to completion even when
// the client goes away.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	identifier, err := scanner.NormalizeIdentifier(chi.URLParam(r, "identifier"))
	if err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "%s", err.Error()))

		return
	}
	useCache, err := boolQuery(r, "cache", true)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	detach, err := boolQuery(r, "detach", false)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	ctx := r.Context()
	if detach {
		ctx = context.WithoutCancel(ctx)
	}

	res, err := h.deps.Scanner.Scan(ctx, identifier, useCache)
	if err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrUnavailable, err, "scan did not complete"))

		return
	}

	writeJSON(w, http.StatusOK, res.Encode)
}

// CreateBatch queues background scans for a list of identifiers.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	if h.deps.Queue == nil {
		h.writeError(w, r, serrors.With(serrors.ErrUnavailable, "background scans require a database"))

		return
	}

	identifiers, err := decodeBatch(http.MaxBytesReader(w, r.Body, maxBatchBody))
	if err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "invalid payload: %s", err.Error()))

		return
	}

	queued, err := h.deps.Queue.Enqueue(r.Context(), identifiers)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusAccepted, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("queued", func(e *jx.Encoder) { e.Int(queued) })
		})
	})
}

// ListHistory returns stored scan records of an identifier, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.deps.History == nil {
		h.writeError(w, r, serrors.With(serrors.ErrUnavailable, "scan history requires a database"))

		return
	}

	identifier, err := scanner.NormalizeIdentifier(chi.URLParam(r, "identifier"))
	if err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "%s", err.Error()))

		return
	}

	var cursor storage.HistoryCursor
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor, err = storage.ParseHistoryCursor(raw)
		if err != nil {
			h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "cursor must be a nextCursor value"))

			return
		}
	}
	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "limit must be between 1 and %d", MaxLimit))

			return
		}
	}

	history, err := h.deps.History.ScansByIdentifier(r.Context(), identifier, cursor, uint(limit)) //nolint: gosec
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("items", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, rec := range history.Records {
						rec.Encode(e)
					}
				})
			})
			e.Field("nextCursor", func(e *jx.Encoder) {
				if history.NextCursor == nil {
					e.Null()

					return
				}
				e.Str(history.NextCursor.String())
			})
		})
	})
}

// GetLatestScan returns the newest stored scan record of an identifier.
func (h *Handler) GetLatestScan(w http.ResponseWriter, r *http.Request) {
	if h.deps.History == nil {
		h.writeError(w, r, serrors.With(serrors.ErrUnavailable, "scan history requires a database"))

		return
	}

	identifier, err := scanner.NormalizeIdentifier(chi.URLParam(r, "identifier"))
	if err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "%s", err.Error()))

		return
	}

	rec, err := h.deps.History.LastScanByIdentifier(r.Context(), identifier)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	if rec == nil {
		h.writeError(w, r, serrors.With(serrors.ErrNotFound, "no stored scan for %q", identifier))

		return
	}

	writeJSON(w, http.StatusOK, rec.Encode)
}

func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, serrors.With(serrors.ErrBadRequest, "%s must be true or false", name)
	}

	return v, nil
}

// decodeBatch reads {"identifiers": [...]}. Unknown fields are ignored.
func decodeBatch(body io.Reader) ([]string, error) {
	d := jx.Decode(body, 4096)

	var identifiers []string
	found := false
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "identifiers" {
			return d.Skip()
		}
		found = true

		return d.Arr(func(d *jx.Decoder) error {
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "identifier")
			}
			identifiers = append(identifiers, v)

			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode batch")
	}
	if !found {
		return nil, errors.New("identifiers is required")
	}

	return identifiers, nil
}
