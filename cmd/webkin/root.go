package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webkin",
		Short: "A recursive related-host web crawler.",
		Long: `webkin crawls each seed host to exhaustion, following links within
the host and promoting related hosts (sibling subdomains sharing a
parent domain) to new crawl targets as they are discovered.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus WEBKIN_* env)")

	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
