package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yatube/internal/app"
	"yatube/internal/service"
)

var seedGroups []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server.

SIGHUP flushes the page cache of the running server.`,
	Example: `  yatube serve --group cats="Cats" --group dogs="Dogs"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		forms, err := parseGroups(seedGroups)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := a.SeedGroups(cmd.Context(), forms); err != nil {
			return err
		}
		return a.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringArrayVar(&seedGroups, "group", nil, "create group slug=Title at startup if missing (repeatable)")
}

func parseGroups(raw []string) ([]service.GroupForm, error) {
	forms := make([]service.GroupForm, 0, len(raw))
	for _, r := range raw {
		slug, title, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("--group %q: want slug=Title", r)
		}
		forms = append(forms, service.GroupForm{Slug: slug, Title: title})
	}
	return forms, nil
}
