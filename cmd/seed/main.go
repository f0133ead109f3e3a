package main

import (
	"context"
	"log"
	"time"

	"tobacco-catalog-be/internal/bootstrap"
	"tobacco-catalog-be/internal/config"
	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/model"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/pkg/database"

	"github.com/fatih/color"
)

var blends = []entity.Tobacco{
	{Name: "Al Fakher Double Apple", Taste: 8, Molasses: 7, SmokeTime: 60, HeatResistance: 6, Comment: "Classic anise apple"},
	{Name: "Adalya Love 66", Taste: 9, Molasses: 8, SmokeTime: 70, HeatResistance: 7, Comment: "Melon, passion fruit, mint"},
	{Name: "Darkside Supernova", Taste: 7.5, Molasses: 5, SmokeTime: 90, HeatResistance: 9, Comment: "Strong cooling"},
	{Name: "Musthave Pinkman", Taste: 8.5, Molasses: 6, SmokeTime: 80, HeatResistance: 8},
	{Name: "Tangiers Cane Mint", Taste: 9, Molasses: 4, SmokeTime: 100, HeatResistance: 9.5, Comment: "Needs a careful heat setup"},
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seeded entries go through the same audit trail as chat edits
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start consumer: %v", err)
	}

	color.Cyan("Seeding %d tobacco blends\n", len(blends))

	created := 0
	for i := range blends {
		blend := blends[i]
		err := container.CatalogService.Create(ctx, &blend)
		switch {
		case err == nil:
			created++
			color.Green("  + %s", blend.Name)
		case apperror.Is(err, apperror.CodeDuplicateName):
			color.Yellow("  = %s (already present)", blend.Name)
		default:
			color.Red("  ! %s: %v", blend.Name, err)
		}
	}

	// Let the consumer drain the catalog topic
	time.Sleep(500 * time.Millisecond)

	color.Cyan("\n✅ Seed complete: %d created, %d skipped", created, len(blends)-created)
}
