// Package mocks holds a testify mock of the Run:AI client for use in other packages' tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

type RunAI struct {
	mock.Mock
}

func (m *RunAI) ListWorkloads(ctx context.Context, projectID string) ([]domain.Workload, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workload), args.Error(1)
}

func (m *RunAI) GetWorkload(ctx context.Context, id string) (*domain.Workload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workload), args.Error(1)
}

func (m *RunAI) DeleteWorkload(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RunAI) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *RunAI) ListClusters(ctx context.Context) ([]domain.Cluster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cluster), args.Error(1)
}

func (m *RunAI) SubmitWorkspace(
	ctx context.Context,
	projectID, name, image string,
	gpu int,
) (api.SubmitResult, error) {
	args := m.Called(ctx, projectID, name, image, gpu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(api.SubmitResult), args.Error(1)
}

func (m *RunAI) SubmitTraining(
	ctx context.Context,
	projectID, name, image, command string,
	gpu int,
) (api.SubmitResult, error) {
	args := m.Called(ctx, projectID, name, image, command, gpu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(api.SubmitResult), args.Error(1)
}
