package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/guidelens/guidelens/internal/app"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/gen"
	"github.com/guidelens/guidelens/internal/live"
)

var (
	demoWidth  int
	demoHeight int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a scripted session to stdout",
	Long: `Runs a scripted chat against the offline client and prints the rendered
frames. Useful for checking the layout without a terminal session or an
API key.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
	demoCmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	cfg.MarkOnboardingDone()

	m := app.New(cfg, version, app.Options{
		GenClient:   gen.NewOfflineClient(),
		LiveManager: live.NewMockManager(),
	})

	steps := []tea.Msg{
		tea.WindowSizeMsg{Width: demoWidth, Height: demoHeight},
		tea.KeyPressMsg{Code: 'n', Text: "n"},
		tea.KeyPressMsg{Code: tea.KeyEnter},
		tea.KeyPressMsg{Code: 'h', Text: "h"},
		tea.KeyPressMsg{Code: 'i', Text: "i"},
		tea.KeyPressMsg{Code: tea.KeyEnter},
	}

	model := tea.Model(m)
	for _, step := range steps {
		model = apply(model, step)
	}

	appModel, ok := model.(*app.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", model)
	}
	fmt.Println(appModel.RenderToString())
	return nil
}

// apply feeds one message through Update, draining resulting commands with
// a bounded budget so async replies land before the frame is captured
func apply(model tea.Model, msg tea.Msg) tea.Model {
	queue := []tea.Msg{msg}
	for budget := 64; budget > 0 && len(queue) > 0; budget-- {
		next := queue[0]
		queue = queue[1:]

		var cmd tea.Cmd
		model, cmd = model.Update(next)
		queue = append(queue, drain(cmd)...)
	}
	return model
}

// drain runs a command tree synchronously, skipping long-running ticks
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()
	select {
	case msg := <-done:
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}
