package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/catalog"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/drive"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
	"github.com/andresuchdata/smart-reorder/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func pullCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "Download catalogue files from Google Drive or object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Usage: "drive or storage",
				Value: "drive",
			},
			&cli.StringFlag{
				Name:    "folder",
				Usage:   "Drive folder id",
				EnvVars: []string{"GOOGLE_DRIVE_FOLDER_ID"},
			},
			&cli.StringFlag{
				Name:  "folder-path",
				Usage: "Drive folder path such as catalogue/current",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Object storage prefix",
			},
			&cli.StringFlag{
				Name:  "object",
				Usage: "Single object key, relative to --prefix",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Download directory (defaults to DRIVE_DOWNLOAD_DIR)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			dir := c.String("dir")
			if dir == "" {
				dir = cfg.Drive.DownloadDir
			}

			var (
				paths []string
				err   error
			)
			switch strings.ToLower(c.String("source")) {
			case "drive":
				paths, err = pullDrive(c.Context, cfg.Drive, c.String("folder"), c.String("folder-path"), dir)
			case "storage":
				var store storage.ObjectStorage
				store, err = storage.New(cfg.Storage)
				if err == nil && store == nil {
					err = fmt.Errorf("STORAGE_PROVIDER is not configured")
				}
				if err == nil {
					paths, err = downloadObjects(c.Context, store, c.String("prefix"), c.String("object"), dir)
				}
			default:
				err = fmt.Errorf("unknown source %q", c.String("source"))
			}
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(c.App.Writer, p)
			}
			logger.Log.Info().Int("files", len(paths)).Str("dir", dir).Msg("catalogue files downloaded")
			return nil
		},
	}
}

func pullDrive(ctx context.Context, cfg config.DriveConfig, folderID, folderPath, dir string) ([]string, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_JSON is required")
	}

	svc, err := drive.NewService(ctx, cfg.CredentialsJSON)
	if err != nil {
		return nil, err
	}

	if folderPath != "" {
		if folderID, err = svc.FindFolderByPath(ctx, folderPath); err != nil {
			return nil, err
		}
	}
	return drive.DownloadFolder(ctx, svc, folderID, dir)
}

// downloadObjects fetches one object, or every catalogue object under prefix, into destDir.
func downloadObjects(ctx context.Context, client storage.ObjectStorage, prefix, override, destDir string) ([]string, error) {
	var keys []string

	if override != "" {
		keys = []string{resolveObjectKey(prefix, override)}
	} else {
		listPrefix := strings.TrimSpace(prefix)
		objects, err := client.ListObjects(ctx, listPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects for prefix %s: %w", listPrefix, err)
		}
		for _, obj := range objects {
			if catalog.IsSupported(obj.Key) {
				keys = append(keys, obj.Key)
			}
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("no catalogue files found for prefix %s", prefix)
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath := filepath.Join(destDir, objectRelativePath(prefix, key))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare directory for %s: %w", localPath, err)
		}
		if err := client.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func resolveObjectKey(prefix, override string) string {
	if override == "" {
		return strings.TrimSpace(prefix)
	}
	if prefix == "" {
		return strings.TrimPrefix(override, "/")
	}

	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	overrideTrimmed := strings.TrimPrefix(strings.TrimSpace(override), "/")

	if strings.HasPrefix(overrideTrimmed, prefixTrimmed) {
		return overrideTrimmed
	}
	return fmt.Sprintf("%s/%s", prefixTrimmed, overrideTrimmed)
}

func objectRelativePath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	rel := strings.TrimPrefix(key, prefixTrimmed+"/")
	if rel == "" {
		return filepath.Base(key)
	}
	return rel
}
