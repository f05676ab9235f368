package main

import (
	"flag"
	"os"

	"github.com/pulse-hq/pulse/internal/config"
	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/pkg/logger"
)

func main() {
	projects := flag.Int("projects", 5, "number of projects to create")
	tasksPerProject := flag.Int("tasks-per-project", 10, "number of tasks per project")
	defaultProject := flag.Bool("default-project", false, "create or reuse a single named project instead")
	defaultProjectName := flag.String("default-project-name", "General", "name of the default project")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	seedService := services.NewSeedService(models.GetDB())
	err = seedService.SeedProjects(services.SeedOptions{
		Projects:           *projects,
		TasksPerProject:    *tasksPerProject,
		DefaultProject:     *defaultProject,
		DefaultProjectName: *defaultProjectName,
	})
	if err != nil {
		logger.Fatalf("Seeding failed: %v", err)
	}
	logger.Info().Msg("Seeding complete")
}
