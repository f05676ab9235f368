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
	file := flag.String("file", "", "path to the organization tree JSON file")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	importService := services.NewOrgImportService(models.GetDB())
	count, err := importService.ImportFile(*file)
	if err != nil {
		logger.Fatalf("Import failed: %v", err)
	}
	logger.Infof("Imported %d employees from %s", count, *file)
}
