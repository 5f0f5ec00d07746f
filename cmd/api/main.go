package main

import (
	"io"
	"log"
	"os"

	"github.com/oguzk/landmark-tracker/internal/config"
	"github.com/oguzk/landmark-tracker/internal/logging"
	"github.com/oguzk/landmark-tracker/internal/repository/postgres"
	"github.com/oguzk/landmark-tracker/internal/service"
	transport "github.com/oguzk/landmark-tracker/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	landmarkRepo := postgres.NewLandmarkRepo(db)
	visitRepo := postgres.NewVisitRepo(db)
	planRepo := postgres.NewPlanRepo(db)

	landmarkService := service.NewLandmarkService(landmarkRepo, visitRepo, planRepo)
	visitService := service.NewVisitService(visitRepo, landmarkRepo, service.VisitServiceConfig{
		AnonymousName: cfg.AnonymousName,
	})
	planService := service.NewPlanService(planRepo, landmarkRepo, service.PlanServiceConfig{
		AnonymousCreator: cfg.AnonymousName,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterLandmarks(e, landmarkService)
	transport.RegisterVisits(e, visitService)
	transport.RegisterPlans(e, planService)
	transport.RegisterSwagger(e)
	transport.RegisterPages(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
