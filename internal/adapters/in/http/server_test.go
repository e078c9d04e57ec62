package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "dronedelivery/internal/adapters/in/http"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/metrics"
	"dronedelivery/internal/pkg/tuning"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const exampleScenario = "20 20\n5 4 60 30\n4 16\n2 2\n8 12\n12 1\n14 17\n16 7\n"

type MockQueueRunHandler struct{ mock.Mock }

func (m *MockQueueRunHandler) Handle(ctx context.Context, cmd commands.QueueRunCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetRunHandler struct{ mock.Mock }

func (m *MockGetRunHandler) Handle(ctx context.Context, q queries.GetRunQuery) (queries.GetRunQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetRunQueryResponse), args.Error(1)
}

type MockListRunsHandler struct{ mock.Mock }

func (m *MockListRunsHandler) Handle(
	ctx context.Context,
	q queries.GetAllRunsQuery,
) ([]queries.GetAllRunsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetAllRunsQueryResponse), args.Error(1)
}

type fixture struct {
	e        *echo.Echo
	queue    *MockQueueRunHandler
	getRun   *MockGetRunHandler
	listRuns *MockListRunsHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		queue:    new(MockQueueRunHandler),
		getRun:   new(MockGetRunHandler),
		listRuns: new(MockListRunsHandler),
	}
	simulate := commands.NewSimulateCommandHandler(nil, nil)
	server := httpin.NewServer(f.queue, &simulate, f.getRun, f.listRuns, tuning.Builtin())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := httpin.NewRouter(server, metrics.New(), logger)
	require.NoError(t, err)
	f.e = e

	t.Cleanup(func() {
		f.queue.AssertExpectations(t)
		f.getRun.AssertExpectations(t)
		f.listRuns.AssertExpectations(t)
	})
	return f
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/health", "")

	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestOpenAPIDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/openapi.yaml", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "operationId: QueueRun")

	doc, err := httpin.GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/runs/{runId}"))
}

func TestQueueRun(t *testing.T) {
	t.Run("accepted with default profile", func(t *testing.T) {
		// Given
		f := newFixture(t)
		f.queue.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.QueueRunCommand) bool {
			return cmd.Scenario() == exampleScenario &&
				cmd.Limits().MaxCapacity() == 2 &&
				cmd.Limits().AutonomyRatio() == 10
		})).Return(nil).Once()

		// When
		rec := f.do(http.MethodPost, "/api/v1/runs", jsonBody(t, map[string]any{"scenario": exampleScenario}))

		// Then
		require.Equal(t, http.StatusAccepted, rec.Code)
		queued := decode[httpin.QueuedRun](t, rec)
		assert.NotEqual(t, [16]byte{}, [16]byte(queued.Id))
	})

	t.Run("overrides take precedence over the profile", func(t *testing.T) {
		f := newFixture(t)
		f.queue.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.QueueRunCommand) bool {
			return cmd.Limits().MaxCapacity() == 3 && cmd.Limits().AutonomyRatio() == 10
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/runs", jsonBody(t, map[string]any{
			"scenario":    exampleScenario,
			"profile":     "heavy",
			"maxCapacity": 3,
		}))

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	tests := []struct {
		name       string
		body       string
		handlerErr error
		wantCode   int
		wantMsg    string
	}{
		{name: "missing scenario rejected by the validator", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "zero capacity rejected by the validator", body: `{"scenario":"x","maxCapacity":0}`, wantCode: http.StatusBadRequest},
		{name: "unknown profile", body: `{"scenario":"x","profile":"express"}`, wantCode: http.StatusBadRequest, wantMsg: "Invalid limits"},
		{
			name:       "invalid scenario",
			body:       `{"scenario":"1 2"}`,
			handlerErr: errs.NewValueIsInvalidErrorWithCause("scenario", errors.New("malformed")),
			wantCode:   http.StatusBadRequest,
			wantMsg:    "Invalid scenario",
		},
		{
			name:       "storage failure",
			body:       `{"scenario":"1 2"}`,
			handlerErr: errors.New("connection refused"),
			wantCode:   http.StatusInternalServerError,
			wantMsg:    "Failed to queue run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.handlerErr != nil {
				f.queue.On("Handle", mock.Anything, mock.Anything).Return(tt.handlerErr).Once()
			}

			rec := f.do(http.MethodPost, "/api/v1/runs", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			apiErr := decode[httpin.Error](t, rec)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

func TestListRuns(t *testing.T) {
	t.Run("passes filter and limit", func(t *testing.T) {
		// Given
		f := newFixture(t)
		id := kernel.NewUUID()
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		f.listRuns.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAllRunsQuery) bool {
			status, ok := q.Status()
			return ok && status.String() == "Completed" && q.Limit() == 5
		})).Return([]queries.GetAllRunsQueryResponse{
			{ID: id, Status: "Completed", Score: 355, Delivered: 5, CreatedAt: createdAt},
		}, nil).Once()

		// When
		rec := f.do(http.MethodGet, "/api/v1/runs?status=Completed&limit=5", "")

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		runs := decode[[]httpin.RunSummary](t, rec)
		require.Len(t, runs, 1)
		assert.Equal(t, id.Google(), runs[0].Id)
		assert.Equal(t, 355, runs[0].Score)
		assert.True(t, createdAt.Equal(runs[0].CreatedAt))
		assert.Nil(t, runs[0].FinishedAt)
	})

	t.Run("defaults when no parameters", func(t *testing.T) {
		f := newFixture(t)
		f.listRuns.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAllRunsQuery) bool {
			_, ok := q.Status()
			return !ok && q.Limit() == queries.DefaultRunsLimit
		})).Return([]queries.GetAllRunsQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/runs", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	for _, target := range []string{
		"/api/v1/runs?status=Running",
		"/api/v1/runs?limit=0",
		"/api/v1/runs?limit=501",
		"/api/v1/runs?limit=ten",
	} {
		t.Run("rejects "+target, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("query failure", func(t *testing.T) {
		f := newFixture(t)
		f.listRuns.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.GetAllRunsQueryResponse(nil), errors.New("boom")).Once()

		rec := f.do(http.MethodGet, "/api/v1/runs", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetRun(t *testing.T) {
	t.Run("completed run", func(t *testing.T) {
		// Given
		f := newFixture(t)
		id := kernel.NewUUID()
		finishedAt := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
		f.getRun.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRunQuery) bool {
			return q.RunID() == id
		})).Return(queries.GetRunQueryResponse{
			ID:         id,
			Status:     "Completed",
			Scenario:   exampleScenario,
			Limits:     queries.RunLimitsResponse{MaxCapacity: 2, AutonomyRatio: 10, MaxDistance: 60},
			Score:      355,
			Delivered:  5,
			MoveLines:  []string{"0 0", "1 1"},
			FinishedAt: &finishedAt,
		}, nil).Once()

		// When
		rec := f.do(http.MethodGet, "/api/v1/runs/"+id.String(), "")

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[httpin.Run](t, rec)
		assert.Equal(t, "Completed", got.Status)
		assert.Equal(t, httpin.Limits{MaxCapacity: 2, AutonomyRatio: 10, MaxDistance: 60}, got.Limits)
		assert.Equal(t, []string{"0 0", "1 1"}, got.Moves)
		assert.Nil(t, got.FailureReason)
		require.NotNil(t, got.FinishedAt)
	})

	t.Run("failed run carries its reason", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.getRun.On("Handle", mock.Anything, mock.Anything).Return(queries.GetRunQueryResponse{
			ID:            id,
			Status:        "Failed",
			MoveLines:     []string{},
			FailureReason: "malformed input",
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/runs/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[httpin.Run](t, rec)
		require.NotNil(t, got.FailureReason)
		assert.Equal(t, "malformed input", *got.FailureReason)
	})

	t.Run("unknown run", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.getRun.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetRunQueryResponse{}, errs.NewObjectNotFoundError("runId", id.String())).Once()

		rec := f.do(http.MethodGet, "/api/v1/runs/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/runs/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nil id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/runs/00000000-0000-0000-0000-000000000000", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSimulate(t *testing.T) {
	t.Run("plays the scenario", func(t *testing.T) {
		// Given
		f := newFixture(t)

		// When
		rec := f.do(http.MethodPost, "/api/v1/simulate", jsonBody(t, map[string]any{"scenario": exampleScenario}))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[httpin.Simulation](t, rec)
		assert.Equal(t, 355, got.Score)
		assert.Equal(t, 5, got.Delivered)
		assert.Empty(t, got.Missing)
		assert.Len(t, got.Moves, 4)
		assert.Len(t, got.Routes, 3)
		assert.Equal(t, 3, got.Report.Routes)
	})

	t.Run("accepts policies", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/simulate", jsonBody(t, map[string]any{
			"scenario": exampleScenario,
			"policies": []string{"Free", "All|Alternative|Wait"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{name: "malformed scenario", body: map[string]any{"scenario": "20 20\n5"}, wantMsg: "Invalid scenario"},
		{
			name:    "oversized scenario",
			body:    map[string]any{"scenario": "2000000000 2000000000\n0 2000000000 2000000000 2000000000\n0 0\n"},
			wantMsg: "Invalid scenario",
		},
		{name: "unknown policy", body: map[string]any{"scenario": exampleScenario, "policies": []string{"Teleport"}}, wantMsg: "Invalid policy"},
		{name: "unknown profile", body: map[string]any{"scenario": exampleScenario, "profile": "express"}, wantMsg: "Invalid limits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/simulate", jsonBody(t, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[httpin.Error](t, rec).Message, tt.wantMsg)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	// Given
	f := newFixture(t)
	body := jsonBody(t, map[string]any{"scenario": strings.Repeat("1 1\n", 2<<20)})

	// When
	rec := f.do(http.MethodPost, "/api/v1/simulate", body)

	// Then
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
