package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"yatube/config"
	"yatube/internal/app"
	"yatube/internal/service"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupForm service.GroupForm

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	Example: `  yatube group create --slug cats --title "Cats" --description "Posts about cats"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StorageType == config.StorageMemory {
			return errors.New("memory storage lives inside the server process: use yatube serve --group slug=Title")
		}

		st, err := app.NewStorages(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := service.NewGroupService(st.Groups).CreateGroup(ctx, groupForm)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "group %d created: /group/%s/\n", g.ID, g.Slug)
		return nil
	},
}

func init() {
	f := groupCreateCmd.Flags()
	f.StringVar(&groupForm.Slug, "slug", "", "url slug (letters, digits, - and _)")
	f.StringVar(&groupForm.Title, "title", "", "group title")
	f.StringVar(&groupForm.Description, "description", "", "group description")
	_ = groupCreateCmd.MarkFlagRequired("slug")
	_ = groupCreateCmd.MarkFlagRequired("title")

	groupCmd.AddCommand(groupCreateCmd)
}
