package views

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
	"github.com/de-tools/runai-atlas/pkg/store/client/mocks"
)

type memoryStore struct {
	cfg domain.ConnectionConfig
}

func (m *memoryStore) Get(context.Context) (domain.ConnectionConfig, error) {
	return m.cfg, nil
}

func (m *memoryStore) Update(_ context.Context, cfg domain.ConnectionConfig) error {
	m.cfg = cfg
	return nil
}

func setupHandler(t *testing.T, runai *mocks.RunAI, configured bool) *Handler {
	t.Helper()

	store := &memoryStore{}
	if configured {
		store.cfg = domain.ConnectionConfig{APIURL: "https://runai.example.com"}
	}
	s, err := session.New(context.Background(), store, func(domain.ConnectionConfig) (client.RunAI, error) {
		return runai, nil
	})
	require.NoError(t, err)

	return NewHandler(s, resources.NewSet(s, LogNotifier{}))
}

func withParams(req *http.Request, params map[string]string) *http.Request {
	ctx := chi.NewRouteContext()
	for k, v := range params {
		ctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestGetView(t *testing.T) {
	tests := []struct {
		name           string
		view           string
		configured     bool
		setupMock      func(*mocks.RunAI)
		expectedStatus int
		expectedBody   api.ViewResponse
	}{
		{
			name:       "workloads",
			view:       "workloads",
			configured: true,
			setupMock: func(m *mocks.RunAI) {
				m.On("ListWorkloads", mock.Anything, "").Return([]domain.Workload{
					{ID: "w1", Name: "train-a", Phase: "Failed", ProjectName: "team-a"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: api.ViewResponse{
				View:       "workloads",
				Configured: true,
				Rows: []api.ViewRow{{
					Kind:         "entity",
					ID:           "w1",
					Label:        "train-a",
					Description:  "Failed - team-a",
					Tooltip:      "train-a\nStatus: Failed\nProject: team-a",
					Icon:         "error",
					IconColor:    "terminal.ansiRed",
					Command:      "run-ai.showWorkloadDetails",
					ContextValue: "workload",
				}},
			},
		},
		{
			name:           "unconfigured",
			view:           "clusters",
			setupMock:      func(*mocks.RunAI) {},
			expectedStatus: http.StatusOK,
			expectedBody: api.ViewResponse{
				View: "clusters",
				Rows: []api.ViewRow{{
					Kind:         "configure",
					Label:        "Click here to configure Run:AI",
					Icon:         "gear",
					Command:      "run-ai.configure",
					ContextValue: "configure",
				}},
			},
		},
		{
			name:       "empty projects",
			view:       "projects",
			configured: true,
			setupMock: func(m *mocks.RunAI) {
				m.On("ListProjects", mock.Anything).Return([]domain.Project{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   api.ViewResponse{View: "projects", Configured: true, Rows: []api.ViewRow{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runai := new(mocks.RunAI)
			tt.setupMock(runai)
			h := setupHandler(t, runai, tt.configured)

			req := withParams(httptest.NewRequest("GET", "/views/"+tt.view, nil), map[string]string{"view": tt.view})
			rec := httptest.NewRecorder()

			h.GetView(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var response api.ViewResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tt.expectedBody, response)
			runai.AssertExpectations(t)
		})
	}
}

func TestGetView_UnknownView(t *testing.T) {
	h := setupHandler(t, new(mocks.RunAI), true)

	req := withParams(httptest.NewRequest("GET", "/views/jobs", nil), map[string]string{"view": "jobs"})
	rec := httptest.NewRecorder()

	h.GetView(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `unknown view \"jobs\"`)
}

func TestRefreshView(t *testing.T) {
	h := setupHandler(t, new(mocks.RunAI), true)
	refreshed := 0
	h.views.Projects.OnDidChange(func() { refreshed++ })

	req := withParams(httptest.NewRequest("POST", "/views/projects/refresh", nil), map[string]string{"view": "projects"})
	rec := httptest.NewRecorder()

	h.RefreshView(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, refreshed)
}

func TestGetWorkloadDetails(t *testing.T) {
	runai := new(mocks.RunAI)
	runai.On("GetWorkload", mock.Anything, "w1").Return(&domain.Workload{
		ID:                 "w1",
		Name:               "train-a",
		Phase:              "Running",
		AllocatedResources: &domain.AllocatedResources{GPU: 1},
	}, nil)
	h := setupHandler(t, runai, true)

	req := withParams(httptest.NewRequest("GET", "/workloads/w1/details", nil), map[string]string{"id": "w1"})
	rec := httptest.NewRecorder()

	h.GetWorkloadDetails(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<span class="status-running">Running</span>`)
}

func TestGetWorkloadDetails_NotFound(t *testing.T) {
	runai := new(mocks.RunAI)
	runai.On("GetWorkload", mock.Anything, "missing").
		Return(nil, &client.APIError{Method: "GET", Path: "/api/v1/workloads/missing", StatusCode: 404, Status: "404 Not Found"})
	h := setupHandler(t, runai, true)

	req := withParams(httptest.NewRequest("GET", "/workloads/missing/details", nil), map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()

	h.GetWorkloadDetails(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteWorkload(t *testing.T) {
	tests := []struct {
		name             string
		configured       bool
		deleteErr        error
		expectedStatus   int
		expectedRefresh  int
		expectDeleteCall bool
	}{
		{name: "deleted", configured: true, expectedStatus: http.StatusNoContent, expectedRefresh: 1, expectDeleteCall: true},
		{name: "service failure", configured: true, deleteErr: errors.New("500 Internal Server Error"),
			expectedStatus: http.StatusBadGateway, expectDeleteCall: true},
		{name: "not configured", expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runai := new(mocks.RunAI)
			if tt.expectDeleteCall {
				runai.On("DeleteWorkload", mock.Anything, "w1").Return(tt.deleteErr)
			}
			h := setupHandler(t, runai, tt.configured)
			refreshed := 0
			h.views.Workloads.OnDidChange(func() { refreshed++ })

			req := withParams(httptest.NewRequest("DELETE", "/workloads/w1", nil), map[string]string{"id": "w1"})
			rec := httptest.NewRecorder()

			h.DeleteWorkload(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedRefresh, refreshed)
			runai.AssertExpectations(t)
		})
	}
}
