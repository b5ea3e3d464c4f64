package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/config"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/dataset"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/tui"
)

func runDashboard(cfg config.Config) {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	if !tui.SetThemeByName(cfg.Theme) {
		log.Printf("themes: unknown theme %q", cfg.Theme)
	}

	model := tui.NewModel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())

	if cfg.UI.Watch {
		watcher := &dataset.Watcher{
			Source: cfg.Source(),
			OnLoad: func(d dataset.Dataset, err error) {
				program.Send(tui.DatasetMsg{Dataset: d, Err: err})
			},
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("dataset watch: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}
