package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "reposcore",
		Short: "GitHub repository engagement scorer",
		Long: `A CLI tool that measures the quality of a repository's engagement.
It collects everyone who starred, watches, or forked a repository and
reports what share of them are significant GitHub users.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add score flags to root command so `reposcore` and `reposcore score` work identically
	addScoreFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdScore(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit())

	return rootCmd
}
