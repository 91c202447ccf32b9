package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialmaster/docktui/internal/config"
	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/tui"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docktui",
	Short: "A terminal dashboard for Docker containers and compose stacks",
	Long: `docktui is a terminal dashboard that monitors Docker containers and
compose stacks and tails their logs live. It supports:
  - Streaming logs from a single container or a whole stack
  - Live substring and /regex/ filtering with marker context
  - Adjustable tail and time-window settings without leaving the view`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docktui version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: searched)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetVersionTemplate("docktui version {{.Version}}\n")

	rootCmd.AddCommand(versionCmd)
}

func runDashboard() error {
	if !verbose {
		// The TUI owns the terminal; keep stray worker logs out of it.
		log.SetOutput(devNull())
	}

	path := configPath
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadWithOverrides(path)
	if err != nil {
		return err
	}

	client, err := docker.NewClient()
	if err != nil {
		return fmt.Errorf("connecting to docker: %w", err)
	}
	defer client.Close()

	return tui.Run(cfg, client)
}

func devNull() *os.File {
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return f
}
