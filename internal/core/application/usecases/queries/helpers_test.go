package queries_test

import (
	"context"
	"time"

	"dronedelivery/internal/adapters/out/postgres/runrepo"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const exampleScenario = "20 20\n5 4 60 30\n4 16\n2 2\n8 12\n12 1\n14 17\n16 7\n"

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// runsDatabaseSuite starts PostgreSQL and migrates the runs table for query suites.
type runsDatabaseSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *runrepo.GormRunRepository
}

func (suite *runsDatabaseSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&runrepo.RunDTO{}))
	suite.repo = runrepo.NewGormRunRepository(db, &mockAggregateTracker{})
}

func (suite *runsDatabaseSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *runsDatabaseSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE runs").Error)
}

func (suite *runsDatabaseSuite) addRun(createdAt time.Time) *run.Run {
	limits, err := kernel.NewLimits(2, 10, 1)
	suite.Require().NoError(err)

	r, err := run.NewRun(kernel.NewUUID(), exampleScenario, limits, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), r))
	return r
}
