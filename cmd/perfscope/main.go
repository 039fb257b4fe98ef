// Package main provides the perfscope server binary.
//
// perfscope exposes host telemetry and a perf-based sampling profiler
// as MCP tools over stdio or HTTP transports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfscope-io/perfscope/internal/cli/serve"
	"github.com/perfscope-io/perfscope/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "perfscope",
		Short:         "Perfscope - host telemetry and sampling profiler over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Perfscope version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}
