package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all sessions, chat histories, and log files",
	Long: `Clears all session data, deletes persisted chat histories, prunes
orphaned history files, and removes log files.

It will prompt for confirmation before proceeding unless the --yes flag
is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	sessions := cfg.GetSessions()
	orphans, err := cfg.FindOrphanedMessageFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error finding orphaned history files: %v\n", err)
	}

	if len(sessions) == 0 && len(orphans) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if len(sessions) > 0 {
		fmt.Printf("  - %d session(s) and their chat histories\n", len(sessions))
	}
	if len(orphans) > 0 {
		fmt.Printf("  - %d orphaned history file(s)\n", len(orphans))
	}
	fmt.Println("  - All log files")

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	for _, sess := range sessions {
		if err := config.DeleteSessionMessages(sess.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error deleting history for %s: %v\n", sess.ID, err)
		}
	}
	for _, id := range orphans {
		if err := config.DeleteSessionMessages(id); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error deleting orphaned history %s: %v\n", id, err)
		}
	}

	cfg.ClearSessions()
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Println("All sessions cleared.")
	if logsCleared > 0 {
		fmt.Printf("Removed %d log file(s).\n", logsCleared)
	}
	return nil
}

// confirm prompts for a yes/no answer on the given reader
func confirm(input io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
