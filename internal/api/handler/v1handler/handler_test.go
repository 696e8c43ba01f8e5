package v1handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"handlescan/internal/api/handler/v1handler"
	mockscanner "handlescan/internal/scanner/mock"
	"handlescan/pkg/domain"
	"handlescan/pkg/logger"
	"handlescan/pkg/serrors"
	"handlescan/pkg/storage"
	mockstorage "handlescan/pkg/storage/mock"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	_ = logger.Setup(logger.DevelopmentEnvironment, "error")
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	// Pass the Kind sentinel directly
	res := h.NewError(ctx, serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	err := serrors.With(serrors.ErrBadRequest, "invalid payload: missing identifiers")
	res := h.NewError(ctx, err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "invalid payload: missing identifiers", res.Response.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	cause := errors.New("bad token")
	err := serrors.Wrap(serrors.ErrUnauthorized, cause, "unauthorized")
	res := h.NewError(ctx, err)
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, serrors.ErrUnauthorized.Error(), res.Response.Code)
	// Should include provided message, not the cause
	require.Equal(t, "unauthorized", res.Response.Message)
}

func TestNewError_InternalKind_GeneratesInternal(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, serrors.With(serrors.ErrTransport, "dial tcp: secret-host"))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

type testAPI struct {
	scanner *mockscanner.MockScanner
	queue   *mockscanner.MockQueue
	history *mockstorage.MockStorage
	router  chi.Router
}

func newTestAPI(t *testing.T, withDB bool) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := &testAPI{scanner: mockscanner.NewMockScanner(ctrl)}
	deps := v1handler.Deps{Scanner: api.scanner}
	if withDB {
		api.queue = mockscanner.NewMockQueue(ctrl)
		api.history = mockstorage.NewMockStorage(ctrl)
		deps.Queue = api.queue
		deps.History = api.history
	}

	api.router = chi.NewRouter()
	v1handler.New(deps).Routes(api.router)

	return api
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

func TestListProviders(t *testing.T) {
	api := newTestAPI(t, false)
	api.scanner.EXPECT().Providers().Return([]domain.Provider{
		{Name: "GitHub", URLTemplate: "https://github.com/{identifier}"},
	})

	rec := api.do(http.MethodGet, "/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"providers":[{"name":"GitHub","url":"https://github.com/{identifier}"}]}`, rec.Body.String())
}

func TestGetScan(t *testing.T) {
	api := newTestAPI(t, false)
	res := domain.NewScanResult("alice", []domain.ProviderReport{
		{Provider: "GitHub", Outcome: domain.OutcomeHit, Attempts: 1},
	}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	api.scanner.EXPECT().Scan(gomock.Any(), "alice", true).Return(res, nil)

	rec := api.do(http.MethodGet, "/scans/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"identifier": "alice",
		"hits": 1,
		"platforms": ["GitHub"],
		"emails": [],
		"reports": [{"provider": "GitHub", "outcome": "HIT", "attempts": 1}],
		"scannedAt": "2025-01-01T00:00:00Z"
	}`, rec.Body.String())
}

func TestGetScan_NoCacheDetached(t *testing.T) {
	api := newTestAPI(t, false)
	api.scanner.EXPECT().Scan(gomock.Any(), "bob", false).DoAndReturn(
		func(ctx context.Context, id string, _ bool) (domain.ScanResult, error) {
			// detached scans never observe the request's cancellation
			require.Nil(t, ctx.Done())

			return domain.NewScanResult(id, nil, time.Now()), nil
		})

	rec := api.do(http.MethodGet, "/scans/bob?cache=false&detach=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetScan_BadInput(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodGet, "/scans/a%20b", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)

	rec = api.do(http.MethodGet, "/scans/alice?cache=maybe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "cache must be true or false")
}

func TestGetScan_Interrupted(t *testing.T) {
	api := newTestAPI(t, false)
	api.scanner.EXPECT().Scan(gomock.Any(), "carol", true).
		Return(domain.ScanResult{}, context.DeadlineExceeded)

	rec := api.do(http.MethodGet, "/scans/carol", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"UNAVAILABLE"`)
}

func TestCreateBatch(t *testing.T) {
	api := newTestAPI(t, true)
	api.queue.EXPECT().Enqueue(gomock.Any(), []string{"alice", "bob"}).Return(2, nil)

	rec := api.do(http.MethodPost, "/batches", `{"identifiers":["alice","bob"],"extra":1}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.JSONEq(t, `{"queued":2}`, rec.Body.String())
}

func TestCreateBatch_Errors(t *testing.T) {
	api := newTestAPI(t, true)

	rec := api.do(http.MethodPost, "/batches", `{"identifiers":[1]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/batches", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "identifiers is required")

	api.queue.EXPECT().Enqueue(gomock.Any(), []string{"not valid"}).
		Return(0, serrors.With(serrors.ErrBadRequest, "invalid identifier"))
	rec = api.do(http.MethodPost, "/batches", `{"identifiers":["not valid"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"code":"BAD_REQUEST","message":"invalid identifier"}`, rec.Body.String())
}

func TestDatabaseEndpoints_Unavailable(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodPost, "/batches", `{"identifiers":["alice"]}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = api.do(http.MethodGet, "/history/alice", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListHistory(t *testing.T) {
	api := newTestAPI(t, true)
	cursor := storage.HistoryCursor{
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		ID:        domain.ScanID(uuid.MustParse("0a6c4a3e-7d1e-4f6b-8f61-0c9a0e2b7d11")),
	}
	next := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	id := uuid.MustParse("6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f")
	record := domain.ScanRecord{
		ID:        domain.ScanID(id),
		Result:    domain.NewScanResult("alice", nil, next),
		CreatedAt: next,
	}
	nextCursor := storage.CursorOf(record)

	api.history.EXPECT().ScansByIdentifier(gomock.Any(), "alice", cursor, uint(2)).Return(storage.ScanHistory{
		Records:    []domain.ScanRecord{record},
		NextCursor: &nextCursor,
	}, nil)

	rec := api.do(http.MethodGet, "/history/alice?cursor="+cursor.String()+"&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"items": [{
			"id": "6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f",
			"result": {
				"identifier": "alice", "hits": 0, "platforms": [], "emails": [], "reports": [],
				"scannedAt": "2025-01-15T00:00:00Z"
			},
			"createdAt": "2025-01-15T00:00:00Z"
		}],
		"nextCursor": "2025-01-15T00:00:00Z_6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f"
	}`, rec.Body.String())
}

func TestListHistory_LastPageAndDefaults(t *testing.T) {
	api := newTestAPI(t, true)
	api.history.EXPECT().ScansByIdentifier(gomock.Any(), "alice", storage.HistoryCursor{}, uint(v1handler.DefaultLimit)).
		Return(storage.ScanHistory{}, nil)

	rec := api.do(http.MethodGet, "/history/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"nextCursor":null}`, rec.Body.String())
}

func TestListHistory_BadQuery(t *testing.T) {
	api := newTestAPI(t, true)

	for _, q := range []string{
		"cursor=yesterday",
		"cursor=2025-02-01T00:00:00Z",
		"cursor=2025-02-01T00:00:00Z_not-a-uuid",
		"limit=0",
		"limit=101",
		"limit=x",
	} {
		rec := api.do(http.MethodGet, "/history/alice?"+q, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetLatestScan(t *testing.T) {
	api := newTestAPI(t, true)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f")
	api.history.EXPECT().LastScanByIdentifier(gomock.Any(), "alice").Return(&domain.ScanRecord{
		ID: domain.ScanID(id),
		Result: domain.NewScanResult("alice", []domain.ProviderReport{
			{Provider: "GitHub", Outcome: domain.OutcomeHit, Attempts: 1},
		}, at),
		CreatedAt: at,
	}, nil)

	rec := api.do(http.MethodGet, "/history/alice/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"id": "6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f",
		"result": {
			"identifier": "alice", "hits": 1, "platforms": ["GitHub"], "emails": [],
			"reports": [{"provider": "GitHub", "outcome": "HIT", "attempts": 1}],
			"scannedAt": "2025-03-01T12:00:00Z"
		},
		"createdAt": "2025-03-01T12:00:00Z"
	}`, rec.Body.String())
}

func TestGetLatestScan_Errors(t *testing.T) {
	api := newTestAPI(t, true)
	api.history.EXPECT().LastScanByIdentifier(gomock.Any(), "nobody").Return(nil, nil)
	api.history.EXPECT().LastScanByIdentifier(gomock.Any(), "broken").Return(nil, errors.New("connection reset"))

	rec := api.do(http.MethodGet, "/history/nobody/latest", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/history/broken/latest", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = api.do(http.MethodGet, "/history/bad%20id/latest", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = newTestAPI(t, false).do(http.MethodGet, "/history/alice/latest", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
