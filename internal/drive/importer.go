package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/catalog"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultDownloadLimit = 4

// ProductImporter stores a validated batch of products.
type ProductImporter interface {
	Import(ctx context.Context, products []domain.Product) (int, error)
}

// ImportResult summarises one import run.
type ImportResult struct {
	Files    []string `json:"files"`
	Products int      `json:"products"`
}

type Importer struct {
	source   Source
	products ProductImporter
	limit    int
}

func NewImporter(source Source, products ProductImporter) *Importer {
	return &Importer{source: source, products: products, limit: defaultDownloadLimit}
}

// ImportFile streams a single catalogue file from Drive into the product store.
func (i *Importer) ImportFile(ctx context.Context, fileID string) (ImportResult, error) {
	file, err := i.source.GetFile(ctx, fileID)
	if err != nil {
		return ImportResult{}, err
	}
	if !catalog.IsSupported(file.Name) {
		return ImportResult{}, fmt.Errorf("%w: unsupported catalogue file %s", domain.ErrInvalidInput, file.Name)
	}

	// 1. Download through a pipe so large CSVs are parsed as they arrive
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(i.source.DownloadFile(ctx, fileID, pw))
	}()

	// 2. Parse rows
	rows, err := catalog.Read(file.Name, pr)
	pr.CloseWithError(err)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%s: %w", file.Name, err)
	}

	// 3. Validate and store
	products, err := catalog.Products(rows)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%s: %w", file.Name, err)
	}

	count, err := i.products.Import(ctx, products)
	if err != nil {
		return ImportResult{}, err
	}

	log.Info().Str("file", file.Name).Int("products", count).Msg("drive file imported")
	return ImportResult{Files: []string{file.Name}, Products: count}, nil
}

// ImportFolder downloads every CSV/XLSX file in the folder concurrently and
// imports them as one batch in listing order. Any bad file aborts the import.
func (i *Importer) ImportFolder(ctx context.Context, folderID string) (ImportResult, error) {
	files, err := catalogueFiles(ctx, i.source, folderID)
	if err != nil {
		return ImportResult{}, err
	}
	if len(files) == 0 {
		return ImportResult{Files: []string{}}, nil
	}

	buffers := make([]bytes.Buffer, len(files))
	err = fetchAll(ctx, i.source, files, i.limit, func(idx int, f *File) (io.Writer, func() error, error) {
		return &buffers[idx], func() error { return nil }, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	var (
		products []domain.Product
		names    = make([]string, 0, len(files))
	)
	for idx, f := range files {
		rows, err := catalog.Read(f.Name, &buffers[idx])
		if err == nil {
			var parsed []domain.Product
			parsed, err = catalog.Products(rows)
			products = append(products, parsed...)
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("%s: %w", f.Name, err)
		}
		names = append(names, f.Name)
	}

	count, err := i.products.Import(ctx, products)
	if err != nil {
		return ImportResult{}, err
	}

	log.Info().Str("folder_id", folderID).Int("files", len(names)).Int("products", count).Msg("drive folder imported")
	return ImportResult{Files: names, Products: count}, nil
}

// DownloadFolder saves every CSV/XLSX file in the folder under dir and returns the local paths.
func DownloadFolder(ctx context.Context, source Source, folderID, dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := catalogueFiles(ctx, source, folderID)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	err = fetchAll(ctx, source, files, defaultDownloadLimit, func(idx int, f *File) (io.Writer, func() error, error) {
		paths[idx] = filepath.Join(dir, filepath.Base(f.Name))
		out, err := os.Create(paths[idx])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create local file %s: %w", paths[idx], err)
		}
		return out, out.Close, nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func catalogueFiles(ctx context.Context, source Source, folderID string) ([]*File, error) {
	all, err := source.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(all))
	for _, f := range all {
		if f.MimeType == folderMimeType || !catalog.IsSupported(f.Name) {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// fetchAll downloads files with at most limit concurrent transfers. open returns
// the destination for file idx and a close func run after the transfer.
func fetchAll(ctx context.Context, source Source, files []*File, limit int, open func(idx int, f *File) (io.Writer, func() error, error)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for idx, f := range files {
		g.Go(func() error {
			w, closeFn, err := open(idx, f)
			if err != nil {
				return err
			}
			if err := source.DownloadFile(gctx, f.ID, w); err != nil {
				_ = closeFn()
				return fmt.Errorf("failed to download %s: %w", f.Name, err)
			}
			return closeFn()
		})
	}

	return g.Wait()
}
