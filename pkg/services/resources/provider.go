package resources

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

// Notifier is the surface fetch failures are reported on.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// Provider feeds one flat resource view.
type Provider interface {
	View() domain.View
	// Refresh tells listeners the displayed rows are stale.
	Refresh()
	// Children returns the rows under parent. Views are one level deep, so
	// only the root (nil parent) has children.
	Children(ctx context.Context, parent *domain.Row) []domain.Row
	// UpdateClient swaps the backing client and refreshes.
	UpdateClient(c client.RunAI)
	OnDidChange(fn func())
}

type listProvider[T any] struct {
	view       domain.View
	list       func(ctx context.Context, c client.RunAI) ([]T, error)
	toRow      func(T) domain.Row
	emptyLabel string
	notifier   Notifier

	mu        sync.RWMutex
	client    client.RunAI
	listeners []func()
}

func NewWorkloadsProvider(c client.RunAI, n Notifier) Provider {
	return &listProvider[domain.Workload]{
		view: domain.ViewWorkloads,
		list: func(ctx context.Context, c client.RunAI) ([]domain.Workload, error) {
			return c.ListWorkloads(ctx, "")
		},
		toRow:      adapters.MapWorkloadToRow,
		emptyLabel: adapters.EmptyWorkloadsLabel,
		notifier:   n,
		client:     c,
	}
}

func NewProjectsProvider(c client.RunAI, n Notifier) Provider {
	return &listProvider[domain.Project]{
		view: domain.ViewProjects,
		list: func(ctx context.Context, c client.RunAI) ([]domain.Project, error) {
			return c.ListProjects(ctx)
		},
		toRow:    adapters.MapProjectToRow,
		notifier: n,
		client:   c,
	}
}

func NewClustersProvider(c client.RunAI, n Notifier) Provider {
	return &listProvider[domain.Cluster]{
		view: domain.ViewClusters,
		list: func(ctx context.Context, c client.RunAI) ([]domain.Cluster, error) {
			return c.ListClusters(ctx)
		},
		toRow:    adapters.MapClusterToRow,
		notifier: n,
		client:   c,
	}
}

func (p *listProvider[T]) View() domain.View {
	return p.view
}

func (p *listProvider[T]) OnDidChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *listProvider[T]) Refresh() {
	p.mu.RLock()
	listeners := append([]func(){}, p.listeners...)
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func (p *listProvider[T]) UpdateClient(c client.RunAI) {
	p.mu.Lock()
	p.client = c
	p.mu.Unlock()
	p.Refresh()
}

func (p *listProvider[T]) Children(ctx context.Context, parent *domain.Row) []domain.Row {
	if parent != nil {
		return []domain.Row{}
	}

	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()

	if c == nil {
		return []domain.Row{adapters.ConfigureRow()}
	}

	items, err := p.list(ctx, c)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("view", string(p.view)).Msg("failed to fetch resources")
		if p.notifier != nil {
			p.notifier.Error(ctx, fmt.Sprintf("Failed to fetch %s: %v", p.view, err))
		}
		return []domain.Row{adapters.ConfigureRow()}
	}

	if len(items) == 0 && p.emptyLabel != "" {
		return []domain.Row{adapters.EmptyRow(p.emptyLabel)}
	}

	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, p.toRow(item))
	}
	return rows
}
