package commands_test

import (
	"context"
	"time"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"
	"dronedelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

const exampleScenario = "20 20\n5 4 60 30\n4 16\n2 2\n8 12\n12 1\n14 17\n16 7\n"

type MockRunRepository struct{ mock.Mock }

func (m *MockRunRepository) Add(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*run.Run), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRunRepository) GetQueued(ctx context.Context, limit int) ([]*run.Run, error) {
	args := m.Called(ctx, limit)
	if r := args.Get(0); r != nil {
		return r.([]*run.Run), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRunUoW struct{ mock.Mock }

func (m *MockRunUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunUoW) RunRepository() ports.RunRepository {
	args := m.Called()
	return args.Get(0).(ports.RunRepository)
}

type MockRunUoWFactory struct{ mock.Mock }

func (m *MockRunUoWFactory) Create() commands.RunUoW {
	args := m.Called()
	return args.Get(0).(commands.RunUoW)
}

type MockSimulator struct{ mock.Mock }

func (m *MockSimulator) Handle(ctx context.Context, cmd commands.SimulateCommand) (commands.SimulateResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SimulateResult), args.Error(1)
}

type MockRunMetrics struct{ mock.Mock }

func (m *MockRunMetrics) ObserveRun(status string, score int, delivered int, missing int, elapsed time.Duration) {
	m.Called(status, score, delivered, missing, elapsed)
}

type MockMoveLogWriter struct{ mock.Mock }

func (m *MockMoveLogWriter) Write(ctx context.Context, score int, lines []string) (string, error) {
	args := m.Called(ctx, score, lines)
	return args.String(0), args.Error(1)
}
