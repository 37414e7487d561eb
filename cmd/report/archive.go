package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
)

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Inspect exports archived in object storage",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List archived exports",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Value: "reports/"},
				},
				Action: func(c *cli.Context) error {
					store, err := archiveStore(c)
					if err != nil {
						return err
					}
					objects, err := store.ListObjects(c.Context, c.String("prefix"))
					if err != nil {
						return err
					}
					sort.Slice(objects, func(i, j int) bool { return objects[i].Key > objects[j].Key })
					for _, obj := range objects {
						fmt.Printf("%10d  %s\n", obj.Size, obj.Key)
					}
					return nil
				},
			},
			{
				Name:      "fetch",
				Usage:     "Download archived exports by key",
				ArgsUsage: "KEY [KEY...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dest", Value: "./data/tmp/archive"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("at least one object key is required")
					}
					store, err := archiveStore(c)
					if err != nil {
						return err
					}
					dest := c.String("dest")
					if err := os.MkdirAll(dest, 0o755); err != nil {
						return fmt.Errorf("failed to ensure download dir %s: %w", dest, err)
					}
					for _, key := range c.Args().Slice() {
						target := filepath.Join(dest, path.Base(key))
						if err := store.DownloadObject(c.Context, key, target); err != nil {
							return fmt.Errorf("download %s: %w", key, err)
						}
						fmt.Fprintln(os.Stderr, "downloaded", target)
					}
					return nil
				},
			},
		},
	}
}

func archiveStore(c *cli.Context) (storage.ObjectStorage, error) {
	store := appFrom(c).Storage
	if _, disabled := store.(storage.NoopStorage); disabled {
		return nil, fmt.Errorf("object storage is disabled; set STORAGE_ENABLED=true")
	}
	return store, nil
}
