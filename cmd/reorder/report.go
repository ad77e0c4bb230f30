package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/catalog"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/export"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/memory"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/service"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

type reportOptions struct {
	File            string
	SimulateProduct string
	Multiplier      float64
	CSV             bool
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the reorder report for a CSV/XLSX catalogue",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Local catalogue file",
			},
			&cli.StringFlag{
				Name:  "object",
				Usage: "Catalogue object key in the configured object storage",
			},
			&cli.StringFlag{
				Name:  "simulate-product",
				Usage: "Product id or name to simulate a demand spike for",
			},
			&cli.Float64Flag{
				Name:  "multiplier",
				Usage: "Sales multiplier for the simulated product (default 2)",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Write CSV instead of a table",
			},
		},
		Action: func(c *cli.Context) error {
			opts := reportOptions{
				File:            c.String("file"),
				SimulateProduct: c.String("simulate-product"),
				Multiplier:      c.Float64("multiplier"),
				CSV:             c.Bool("csv"),
			}

			if key := c.String("object"); key != "" {
				path, cleanup, err := fetchObject(c.Context, key)
				if err != nil {
					return err
				}
				defer cleanup()
				opts.File = path
			}
			if opts.File == "" {
				return fmt.Errorf("either --file or --object is required")
			}

			return runReport(c.Context, c.App.Writer, opts)
		},
	}
}

func runReport(ctx context.Context, w io.Writer, opts reportOptions) error {
	rows, err := catalog.ReadFile(opts.File)
	if err != nil {
		return err
	}
	products, err := catalog.Products(rows)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.File, err)
	}

	repo := memory.NewProductRepository()
	if _, err := service.NewProductService(repo, nil).Import(ctx, products); err != nil {
		return err
	}
	stored, err := repo.List(ctx)
	if err != nil {
		return err
	}

	req := service.SimulationRequest{}
	if opts.SimulateProduct != "" {
		id, err := resolveProduct(stored, opts.SimulateProduct)
		if err != nil {
			return err
		}
		req = service.SimulationRequest{Active: true, ProductID: id, Multiplier: opts.Multiplier}
	}

	report, err := service.NewReportService(repo, nil, nil, service.ReportOptions{}).Generate(ctx, req)
	if err != nil {
		return err
	}

	if opts.CSV {
		return export.WriteReportCSV(w, report.Entries, report.Simulating)
	}
	if err := export.WriteReportTable(w, report.Entries, report.Simulating); err != nil {
		return err
	}
	fmt.Fprintln(w, report.Message)
	return nil
}

// resolveProduct matches an id first, then a case-insensitive name.
func resolveProduct(products []domain.Product, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, p := range products {
		if p.ID == ref {
			return p.ID, nil
		}
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("product %q: %w", ref, domain.ErrNotFound)
}

// fetchObject downloads a catalogue object to a temp dir.
func fetchObject(ctx context.Context, key string) (string, func(), error) {
	store, err := storage.New(config.Load().Storage)
	if err != nil {
		return "", nil, err
	}
	if store == nil {
		return "", nil, fmt.Errorf("STORAGE_PROVIDER is not configured")
	}

	dir, err := os.MkdirTemp("", "reorder-catalogue-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(key))
	if err := store.DownloadObject(ctx, key, path); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
