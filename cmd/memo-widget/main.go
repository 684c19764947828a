package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"memo-go/internal/app"
	"memo-go/internal/config"
	"memo-go/internal/widget"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var cfgPath string

// newWidgetApp loads config and wires the widget. It never fails: a broken
// or missing config is reported on stderr and the app degrades to the
// fallback view, because the widget surface has no place to show an error.
func newWidgetApp() *app.WidgetApp {
	var cfg *config.Config

	path, err := configPath()
	if err == nil {
		cfg, err = config.ReadFromFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "memo-widget: %v\n", err)
		cfg = nil
	}

	return app.NewWidgetApp(cfg)
}

// configPath resolves the config file location: the --config flag when set,
// otherwise the environment/defaults.
func configPath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	defaults, err := app.GetDefaults()
	if err != nil {
		return "", fmt.Errorf("getting defaults: %w", err)
	}
	return defaults["config_path"], nil
}

var rootCmd = &cobra.Command{
	Use:   "memo-widget",
	Short: "Read-only widget surface for the shared memo store",
}

// refresh command: the one-shot host callback
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Render the current widget view once",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		w := newWidgetApp()
		defer w.Close()

		view := w.Refresh()
		if asJSON {
			return widget.RenderJSON(os.Stdout, view)
		}
		return widget.Render(os.Stdout, view)
	},
}

// run command: stands in for the OS widget host, refreshing on the schedule
// each view requests
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Refresh continuously, sleeping until each view's refresh time",
	RunE: func(cmd *cobra.Command, args []string) error {
		for {
			// Rewire from scratch each cycle, like a fresh host callback:
			// a store created after startup is picked up on the next one.
			w := newWidgetApp()
			view := w.Refresh()
			err := widget.Render(os.Stdout, view)
			w.Close()
			if err != nil {
				return err
			}
			fmt.Println()

			d := time.Until(view.RefreshAt)
			if d < time.Second {
				d = time.Second
			}
			time.Sleep(d)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: $MEMO_CONFIG_PATH or ~/.config/memo.toml)")

	refreshCmd.Flags().Bool("json", false, "Render as JSON")
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(runCmd)
}
