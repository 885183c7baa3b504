package main

import (
	"context"

	"github.com/spf13/cobra"

	"winterreise/internal/app"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the windows and their hints without opening the switcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		w := app.NewWinterreise(env.cfg, env.comp, nil, env.notifier, env.log)
		if err := w.List(context.Background(), cmd.OutOrStdout(), currentOnly, listFormat); err != nil {
			env.log.Error("Failed to list windows", err)
			return err
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", app.FormatYAML, "output format: yaml or json")
	rootCmd.AddCommand(listCmd)
}
