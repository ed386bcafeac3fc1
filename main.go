package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"combobox/internal/config"
	"combobox/internal/domain"
	"combobox/internal/eventbus"
	"combobox/internal/ui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: user config dir)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("combobox.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Load configuration
	configSvc := config.NewService()
	var cfg *config.Config
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.Default()
	}

	// Create event bus and log the interesting transitions
	bus := eventbus.New()
	bus.Subscribe(eventbus.EventItemSelected, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ItemSelectedEvent); ok {
			log.Printf("Selected %q at index %d", event.Item.String(), event.Index)
		}
	})
	bus.Subscribe(eventbus.EventOutsideClick, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.OutsideClickEvent); ok {
			log.Printf("Outside click at %d,%d", event.X, event.Y)
		}
	})

	// Create UI model
	model := ui.NewModel(cfg, candidates(), bus)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.UISettings.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	model.Controller().Teardown()
}

// candidates is the demo data set; a couple of entries are disabled
// to show that they highlight but never select
func candidates() []*domain.Item {
	langs := []string{
		"awk", "bash", "c", "c++", "clojure", "crystal", "dart", "elixir",
		"erlang", "fortran", "go", "haskell", "java", "javascript", "julia",
		"kotlin", "lua", "nim", "ocaml", "perl", "php", "python", "r",
		"racket", "ruby", "rust", "scala", "scheme", "swift", "typescript",
		"zig",
	}
	items := make([]*domain.Item, 0, len(langs))
	for i, l := range langs {
		items = append(items, &domain.Item{
			Value:    i,
			Label:    l,
			Disabled: l == "fortran" || l == "perl",
			TestID:   fmt.Sprintf("lang-%s", l),
		})
	}
	return items
}
