package main

import (
	"database/sql"
	"fmt"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/catalog"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/smart-reorder/backend-go/pkg/logger"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Bulk-load a catalogue file into postgres",
		Flags: []cli.Flag{
			newDBURLFlag(),
			&cli.StringFlag{
				Name:     "file",
				Usage:    "CSV/XLSX catalogue to load",
				Required: true,
				EnvVars:  []string{"SEED_FILE"},
			},
		},
		Action: runSeed,
	}
}

func runSeed(c *cli.Context) error {
	ctx := c.Context

	rows, err := catalog.ReadFile(c.String("file"))
	if err != nil {
		return err
	}
	products, err := catalog.Products(rows)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == "" {
			products[i] = products[i].WithID(uuid.NewString())
		}
	}

	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.Wrap(sqlx.NewDb(db, "pgx")).EnsureSchema(ctx); err != nil {
		return err
	}

	logger.Log.Info().Str("file", c.String("file")).Int("products", len(products)).Msg("Starting database seeding...")

	count, err := repository.NewIngestRepository(db).UpsertProducts(ctx, products)
	if err != nil {
		return err
	}

	logger.Log.Info().Int("products", count).Msg("Seeding completed")
	return nil
}
