package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/seomaster"
	"github.com/eringen/seomaster/content"
	"github.com/eringen/seomaster/log"
)

var (
	seedFile  string
	seedPrune bool
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "posts.yaml", "YAML file with the posts to load")
	seedCmd.Flags().BoolVar(&seedPrune, "prune", false, "delete stored posts that are not in the file")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load blog posts from a YAML file into the SQLite store",
	Long: `Load blog posts from a YAML file into the SQLite store.

Posts are upserted by slug, so running seed again updates existing posts
and keeps their view counts. With --prune, stored posts missing from the
file are deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := seomaster.LoadConfig(configFile)
		if err != nil {
			return err
		}

		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		posts, err := content.LoadSeed(f, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("%s: %w", seedFile, err)
		}

		store, err := seomaster.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		pruned, err := store.Seed(cmd.Context(), posts, seedPrune)
		if err != nil {
			return err
		}
		for _, p := range posts {
			log.S().Infow("seeded post", "slug", p.Slug, "published", p.Published)
		}
		for _, slug := range pruned {
			log.S().Infow("pruned post", "slug", slug)
		}
		log.S().Infof("seeded %d posts into %s", len(posts), cfg.DatabasePath)
		return nil
	},
}
