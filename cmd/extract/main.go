package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/splitkit/cli"
	"github.com/sokinpui/splitkit/internal/model"
	"github.com/sokinpui/splitkit/internal/tui"
	"github.com/sokinpui/splitkit/internal/ui"
	"github.com/sokinpui/splitkit/splitkit"
)

func main() {
	cfg, err := cli.ParseExtractFlags(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		if !errors.Is(err, cli.ErrUsage) {
			ui.Error("Error: %v", err)
		}
		os.Exit(1)
	}

	app := splitkit.New()
	task := func() (model.Summary, error) { return app.Extract(cfg) }

	if cfg.TUI {
		ui.SetOutput(io.Discard)
		if err := tui.Run("Extracting files...", task, app); err != nil {
			os.Exit(1)
		}
		return
	}

	summary, err := task()
	if err != nil {
		var detailed *splitkit.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v.", err)
		os.Exit(1)
	}
	fmt.Println(summary.Message)
}
