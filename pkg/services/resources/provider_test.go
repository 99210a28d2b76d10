package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
	"github.com/de-tools/runai-atlas/pkg/store/client/mocks"
)

type recordingNotifier struct {
	errors []string
}

func (r *recordingNotifier) Error(_ context.Context, message string) {
	r.errors = append(r.errors, message)
}

func TestChildren_NoClientShowsConfigureRow(t *testing.T) {
	n := &recordingNotifier{}
	for _, p := range []Provider{
		NewWorkloadsProvider(nil, n),
		NewProjectsProvider(nil, n),
		NewClustersProvider(nil, n),
	} {
		t.Run(string(p.View()), func(t *testing.T) {
			rows := p.Children(context.Background(), nil)

			require.Len(t, rows, 1)
			assert.Equal(t, domain.RowConfigure, rows[0].Kind)
			assert.Equal(t, adapters.ConfigureLabel, rows[0].Label)
		})
	}
	assert.Empty(t, n.errors)
}

func TestChildren_NonRootIsEmpty(t *testing.T) {
	runai := new(mocks.RunAI)
	p := NewWorkloadsProvider(runai, &recordingNotifier{})
	parent := adapters.MapWorkloadToRow(domain.Workload{ID: "w1"})

	rows := p.Children(context.Background(), &parent)

	assert.Empty(t, rows)
	runai.AssertNotCalled(t, "ListWorkloads", mock.Anything, mock.Anything)
}

func TestWorkloadsProvider_Rows(t *testing.T) {
	tests := []struct {
		name      string
		workloads []domain.Workload
		err       error
		wantKinds []domain.RowKind
		wantError string
	}{
		{
			name: "entities in server order",
			workloads: []domain.Workload{
				{ID: "w2", Name: "second", Phase: "Pending"},
				{ID: "w1", Name: "first", Phase: "Running"},
			},
			wantKinds: []domain.RowKind{domain.RowEntity, domain.RowEntity},
		},
		{
			name:      "empty list shows empty row",
			workloads: []domain.Workload{},
			wantKinds: []domain.RowKind{domain.RowEmpty},
		},
		{
			name:      "failure falls back to configure row",
			err:       errors.New("GET /api/v1/workloads: 401 Unauthorized"),
			wantKinds: []domain.RowKind{domain.RowConfigure},
			wantError: "Failed to fetch workloads: GET /api/v1/workloads: 401 Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runai := new(mocks.RunAI)
			if tt.err != nil {
				runai.On("ListWorkloads", mock.Anything, "").Return(nil, tt.err)
			} else {
				runai.On("ListWorkloads", mock.Anything, "").Return(tt.workloads, nil)
			}
			n := &recordingNotifier{}

			rows := NewWorkloadsProvider(runai, n).Children(context.Background(), nil)

			var kinds []domain.RowKind
			for _, r := range rows {
				kinds = append(kinds, r.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
			if tt.wantError != "" {
				assert.Equal(t, []string{tt.wantError}, n.errors)
			} else {
				assert.Empty(t, n.errors)
			}
			if len(tt.workloads) == 2 {
				assert.Equal(t, "second", rows[0].Label)
				assert.Equal(t, "first", rows[1].Label)
			}
		})
	}
}

func TestProjectsProvider_EmptyListHasNoPlaceholder(t *testing.T) {
	runai := new(mocks.RunAI)
	runai.On("ListProjects", mock.Anything).Return([]domain.Project{}, nil)

	rows := NewProjectsProvider(runai, &recordingNotifier{}).Children(context.Background(), nil)

	assert.Empty(t, rows)
}

func TestClustersProvider_Failure(t *testing.T) {
	runai := new(mocks.RunAI)
	runai.On("ListClusters", mock.Anything).Return(nil, errors.New("connection refused"))
	n := &recordingNotifier{}

	rows := NewClustersProvider(runai, n).Children(context.Background(), nil)

	require.Len(t, rows, 1)
	assert.Equal(t, domain.RowConfigure, rows[0].Kind)
	assert.Equal(t, []string{"Failed to fetch clusters: connection refused"}, n.errors)
}

func TestUpdateClient_RefreshesListeners(t *testing.T) {
	p := NewProjectsProvider(nil, &recordingNotifier{})
	fired := 0
	p.OnDidChange(func() { fired++ })

	p.Refresh()
	assert.Equal(t, 1, fired)

	runai := new(mocks.RunAI)
	runai.On("ListProjects", mock.Anything).Return([]domain.Project{{ID: "p1", Name: "team"}}, nil)
	p.UpdateClient(runai)

	assert.Equal(t, 2, fired)
	rows := p.Children(context.Background(), nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "team", rows[0].Label)
}

type staticStore struct {
	cfg domain.ConnectionConfig
}

func (s *staticStore) Get(context.Context) (domain.ConnectionConfig, error) { return s.cfg, nil }

func (s *staticStore) Update(_ context.Context, cfg domain.ConnectionConfig) error {
	s.cfg = cfg
	return nil
}

func TestSet_FollowsSessionReconfiguration(t *testing.T) {
	ctx := context.Background()
	runai := new(mocks.RunAI)
	runai.On("ListClusters", mock.Anything).Return([]domain.Cluster{{ID: "c1", Name: "prod"}}, nil)

	s, err := session.New(ctx, &staticStore{}, func(domain.ConnectionConfig) (client.RunAI, error) {
		return runai, nil
	})
	require.NoError(t, err)

	set := NewSet(s, &recordingNotifier{})
	clusters, err := set.Get(domain.ViewClusters)
	require.NoError(t, err)

	assert.Equal(t, domain.RowConfigure, clusters.Children(ctx, nil)[0].Kind)

	require.NoError(t, s.Configure(ctx, domain.ConnectionConfig{APIURL: "https://app.run.ai"}))

	rows := clusters.Children(ctx, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "prod", rows[0].Label)

	_, err = set.Get(domain.View("jobs"))
	assert.Error(t, err)
}

func TestNewSetPerView_RoutesFailuresToTheirView(t *testing.T) {
	// Given
	ctx := context.Background()
	runai := new(mocks.RunAI)
	runai.On("ListWorkloads", mock.Anything, "").Return(nil, errors.New("boom"))
	runai.On("ListProjects", mock.Anything).Return([]domain.Project{}, nil)

	s, err := session.New(ctx, &staticStore{cfg: domain.ConnectionConfig{APIURL: "https://app.run.ai"}},
		func(domain.ConnectionConfig) (client.RunAI, error) { return runai, nil })
	require.NoError(t, err)

	notifiers := map[domain.View]*recordingNotifier{}
	set := NewSetPerView(s, func(view domain.View) Notifier {
		n := &recordingNotifier{}
		notifiers[view] = n
		return n
	})

	// When
	set.Workloads.Children(ctx, nil)
	set.Projects.Children(ctx, nil)

	// Then
	assert.Equal(t, []string{"Failed to fetch workloads: boom"}, notifiers[domain.ViewWorkloads].errors)
	assert.Empty(t, notifiers[domain.ViewProjects].errors)
	assert.Empty(t, notifiers[domain.ViewClusters].errors)
}
