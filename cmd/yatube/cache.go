package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"yatube/config"
	"yatube/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the page cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop every cached page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.PageCache.Backend == config.CacheMemory {
			return errors.New("memory page cache lives inside the server process: send SIGHUP to yatube serve")
		}

		cache, closeCache, err := app.NewPageCache(cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		if err := cache.Flush(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s page cache flushed\n", cfg.PageCache.Backend)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
}
