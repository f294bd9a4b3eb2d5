package main

import (
	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

func newRootCommand() *cobra.Command {
	var apiFlag, sessionFlag string
	var jsonFlag bool

	ctx := &commandContext{
		apiFlag:     &apiFlag,
		sessionFlag: &sessionFlag,
		jsonFlag:    &jsonFlag,
	}

	rootCmd := &cobra.Command{
		Use:           "movietier",
		Short:         "Build movie tier lists from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "API base URL (default from session or "+defaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", defaultSessionPath(), "session file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print raw JSON")

	rootCmd.AddCommand(newAuthCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newMovieCommand(ctx))
	rootCmd.AddCommand(newSyncCommand(ctx))
	return rootCmd
}
