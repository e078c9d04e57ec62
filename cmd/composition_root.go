package cmd

import (
	"fmt"
	"log/slog"

	httpin "dronedelivery/internal/adapters/in/http"
	"dronedelivery/internal/adapters/out/postgres"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/jobs"
	"dronedelivery/internal/pkg/metrics"
	"dronedelivery/internal/pkg/tuning"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const defaultRunBatchSize = 10

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	profiles   tuning.Profiles
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	profiles, err := LoadProfiles(configs)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		profiles:   profiles,
		metrics:    metrics.Default(),
		logger:     logger,
	}, nil
}

// LoadProfiles reads the configured profiles file, or the built-in profiles, and
// applies the default profile name and the capacity and ratio overrides.
func LoadProfiles(configs Config) (tuning.Profiles, error) {
	profiles := tuning.Builtin()
	if configs.ProfilesFile != "" {
		loaded, err := tuning.Load(configs.ProfilesFile)
		if err != nil {
			return tuning.Profiles{}, err
		}
		profiles = loaded
	}

	if configs.LimitsProfile != "" {
		profiles.Default = configs.LimitsProfile
	}
	profile, err := profiles.Lookup("")
	if err != nil {
		return tuning.Profiles{}, fmt.Errorf("default limits profile: %w", err)
	}
	if configs.DroneMaxCapacity != nil {
		profile.MaxCapacity = *configs.DroneMaxCapacity
	}
	if configs.AutonomyRatio != nil {
		profile.AutonomyRatio = *configs.AutonomyRatio
	}

	overridden := make(map[string]tuning.Profile, len(profiles.Profiles))
	for name, p := range profiles.Profiles {
		overridden[name] = p
	}
	overridden[profiles.Default] = profile
	profiles.Profiles = overridden

	if err = profiles.Validate(); err != nil {
		return tuning.Profiles{}, err
	}
	return profiles, nil
}

func (c *CompositionRoot) CreateQueueRunCommandHandler() commands.QueueRunCommandHandler {
	var f commands.RunUoWFactory = FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewQueueRunCommandHandler(f)
}

func (c *CompositionRoot) CreateSimulateCommandHandler() commands.SimulateCommandHandler {
	return commands.NewSimulateCommandHandler(nil, c.logger)
}

func (c *CompositionRoot) CreateProcessQueuedRunsCommandHandler() commands.ProcessQueuedRunsCommandHandler {
	var f commands.RunUoWFactory = FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
	simulator := c.CreateSimulateCommandHandler()
	return commands.NewProcessQueuedRunsCommandHandler(f, &simulator, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateGetRunQueryHandler() queries.GetRunQueryHandler {
	return queries.NewGetRunQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllRunsQueryHandler() queries.GetAllRunsQueryHandler {
	return queries.NewGetAllRunsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	queueRun := c.CreateQueueRunCommandHandler()
	simulate := c.CreateSimulateCommandHandler()

	server := httpin.NewServer(
		&queueRun,
		&simulate,
		c.CreateGetRunQueryHandler(),
		c.CreateGetAllRunsQueryHandler(),
		c.profiles,
	)
	return httpin.NewRouter(server, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	batchSize := c.configs.RunBatchSize
	if batchSize == 0 {
		batchSize = defaultRunBatchSize
	}
	processor := c.CreateProcessQueuedRunsCommandHandler()
	return jobs.NewJobManager(&processor, batchSize, c.logger)
}

type FuncRunUoWFactory func() commands.RunUoW

func (f FuncRunUoWFactory) Create() commands.RunUoW {
	return f()
}
