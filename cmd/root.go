package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/guidelens/guidelens/internal/app"
	"github.com/guidelens/guidelens/internal/clipboard"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "guidelens",
	Short: "Terminal companion for the GuideLens AI guides",
	Long: `GuideLens puts four AI guides in your terminal: a chef, a crafting
artisan, a companionship buddy, and a DIY fixer. Chat with text and
images, or go live with voice and video sessions.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("guidelens %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("guidelens %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := logger.Init(logger.DefaultLogPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	defer logger.Close()

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}

	m := app.New(cfg, version, app.Options{})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
