package viewer

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/store/client"
	"github.com/de-tools/runai-atlas/pkg/store/client/mocks"
)

func testModel(t *testing.T) (Model, *mocks.RunAI) {
	t.Helper()

	runai := new(mocks.RunAI)
	runai.On("ListWorkloads", mock.Anything, "").Return([]domain.Workload{
		{ID: "w1", Name: "train-a", Phase: "Running", ProjectName: "team-a", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "w2", Name: "notebook", Phase: "Pending", ProjectName: "team-a"},
		{ID: "w3", Name: "old-job", Phase: "Failed", ProjectName: "team-b"},
	}, nil)
	runai.On("ListProjects", mock.Anything).Return([]domain.Project{
		{ID: "p1", Name: "team-a", DepartmentName: "research"},
	}, nil)
	runai.On("ListClusters", mock.Anything).Return([]domain.Cluster{}, nil)

	return NewModel(context.Background(), tabsFor(runai)), runai
}

func tabsFor(runai *mocks.RunAI) []Tab {
	tabs := make([]Tab, 0, 3)
	for _, build := range []func(client.RunAI, resources.Notifier) resources.Provider{
		resources.NewWorkloadsProvider,
		resources.NewProjectsProvider,
		resources.NewClustersProvider,
	} {
		n := &StatusNotifier{}
		tabs = append(tabs, Tab{Provider: build(runai, n), Status: n})
	}
	return tabs
}

// loadAll runs the initial fetch for every tab the way the program would.
func loadAll(t *testing.T, model Model) Model {
	t.Helper()
	for tab := range model.tabs {
		updated, _ := model.Update(model.load(tab)())
		model = updated.(Model)
	}
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func press(model Model, r rune) Model {
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func TestModelView_LoadingBeforeResize(t *testing.T) {
	model, _ := testModel(t)

	assert.Equal(t, "Loading...", model.View())
}

func TestModelView_ShowsWorkloadRows(t *testing.T) {
	model, _ := testModel(t)
	model = loadAll(t, model)

	view := model.View()

	assert.Contains(t, view, "1:Workloads")
	assert.Contains(t, view, "2:Projects")
	assert.Contains(t, view, "train-a")
	assert.Contains(t, view, "Running - team-a")
	assert.Contains(t, view, "q quit")
}

func TestModelNavigation(t *testing.T) {
	model, _ := testModel(t)
	model = loadAll(t, model)

	model = press(model, 'j')
	assert.Equal(t, 1, model.cursor[0])

	model = press(model, 'j')
	model = press(model, 'j')
	assert.Equal(t, 2, model.cursor[0], "cursor stays on the last row")

	model = press(model, 'k')
	assert.Equal(t, 1, model.cursor[0])
}

func TestModelTabSwitching(t *testing.T) {
	model, _ := testModel(t)
	model = loadAll(t, model)

	model = press(model, '2')
	assert.Equal(t, 1, model.tab)
	assert.Contains(t, model.View(), "research")

	model = press(model, '3')
	assert.Equal(t, 2, model.tab)
	assert.NotContains(t, model.View(), "research")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	assert.Equal(t, 0, model.tab)
}

func TestModelSelect_TogglesWorkloadDetail(t *testing.T) {
	model, _ := testModel(t)
	model = loadAll(t, model)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	require.True(t, model.detail)
	assert.Contains(t, model.View(), "Project: team-a")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	assert.False(t, model.detail)
}

func TestModelRefresh_QueuesReload(t *testing.T) {
	model, _ := testModel(t)
	model = loadAll(t, model)

	model = press(model, 'r')

	assert.Equal(t, "Workloads refreshed", model.status)
	select {
	case tab := <-model.changes:
		assert.Equal(t, 0, tab)
	default:
		t.Fatal("refresh should signal a reload")
	}
}

func TestModelFetchFailure_ShowsStatus(t *testing.T) {
	runai := new(mocks.RunAI)
	runai.On("ListWorkloads", mock.Anything, "").Return(nil, errors.New("boom"))

	n := &StatusNotifier{}
	model := NewModel(context.Background(), []Tab{{Provider: resources.NewWorkloadsProvider(runai, n), Status: n}})
	model = loadAll(t, model)

	view := model.View()
	assert.Contains(t, view, "Failed to fetch workloads: boom")
	assert.Contains(t, view, "Click here to configure Run:AI")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	assert.True(t, strings.Contains(model.status, "runai configure"))
}

func TestModelQuit(t *testing.T) {
	model, _ := testModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestModelLoad_StatusStaysWithItsTab(t *testing.T) {
	// Given: workloads fail while projects succeed
	runai := new(mocks.RunAI)
	runai.On("ListWorkloads", mock.Anything, "").Return(nil, errors.New("boom"))
	runai.On("ListProjects", mock.Anything).Return([]domain.Project{{ID: "p1", Name: "team-a"}}, nil)
	runai.On("ListClusters", mock.Anything).Return([]domain.Cluster{}, nil)
	model := NewModel(context.Background(), tabsFor(runai))

	// When: the workloads fetch fails before the projects load completes
	model.tabs[0].Provider.Children(context.Background(), nil)
	projects := model.load(1)().(rowsMsg)
	workloads := model.load(0)().(rowsMsg)

	// Then
	assert.Empty(t, projects.status)
	assert.Equal(t, "Failed to fetch workloads: boom", workloads.status)
}
