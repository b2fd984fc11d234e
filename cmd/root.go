package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tickdo application
var rootCmd = &cobra.Command{
	Use:   "tickdo",
	Short: "MCP server for TickTick task management",
	Long: `tickdo is an MCP (Model Context Protocol) server that exposes TickTick
projects and tasks to AI assistants.

It provides a timezone-aware query engine over your tasks (due today,
overdue, due in N days, GTD-style "engaged" and "next" views, free-text
search) plus project and task management tools.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tickdo version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
