package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tiltlabs/engineer-on-demand/internal/adapters/database"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/schedule"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/postgres"
	"github.com/tiltlabs/engineer-on-demand/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				appointments,
				early_access_requests,
				engineers
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	engineerRepo := database.NewEngineerAdapter(pgClient)

	weekdays := schedule.WeeklyHours{
		{Day: "Monday", Start: "09:00", End: "17:00"},
		{Day: "Tuesday", Start: "09:00", End: "17:00"},
		{Day: "Wednesday", Start: "09:00", End: "17:00"},
		{Day: "Thursday", Start: "09:00", End: "17:00"},
		{Day: "Friday", Start: "09:00", End: "17:00"},
	}

	now := time.Now()
	engineers := []entities.Engineer{
		{
			ID:         uuid.New().String(),
			Name:       "Sam Okafor",
			Email:      "sam.okafor@example.com",
			Skills:     []string{"postgres", "kubernetes", "terraform"},
			HourlyRate: 140,
			RemoteRate: 2.5,
			Location: entities.Location{
				ZipCode:     "94107",
				Address:     "San Francisco, CA",
				Coordinates: &entities.Coordinates{Lat: 37.7749, Lng: -122.4194},
			},
			Availability:       weekdays,
			ServiceRadiusMiles: 25,
			Status:             entities.EngineerStatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:         uuid.New().String(),
			Name:       "Priya Natarajan",
			Email:      "priya.natarajan@example.com",
			Skills:     []string{"aws", "golang", "networking"},
			HourlyRate: 160,
			Location: entities.Location{
				ZipCode:     "94014",
				Address:     "Daly City, CA",
				Coordinates: &entities.Coordinates{Lat: 37.6879, Lng: -122.4702},
			},
			Availability: append(schedule.WeeklyHours{
				{Day: "Saturday", Start: "10:00", End: "14:00"},
			}, weekdays...),
			ServiceRadiusMiles: 40,
			Status:             entities.EngineerStatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:         uuid.New().String(),
			Name:       "Marcus Webb",
			Email:      "marcus.webb@example.com",
			Skills:     []string{"react", "node", "performance"},
			HourlyRate: 120,
			RemoteRate: 2.0,
			Location: entities.Location{
				ZipCode:     "95113",
				Address:     "San Jose, CA",
				Coordinates: &entities.Coordinates{Lat: 37.3382, Lng: -121.8863},
			},
			Availability:       weekdays,
			ServiceRadiusMiles: 15,
			Status:             entities.EngineerStatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}

	for _, e := range engineers {
		if err := engineerRepo.Create(ctx, &e); err != nil {
			log.Printf("Failed to create engineer %s: %v", e.Name, err)
		}
	}

	log.Printf("Seeded %d engineers", len(engineers))
}
