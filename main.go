// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// parley is a role-play chat TUI for OpenAI-compatible endpoints.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "config file path (default ~/.parley/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("parley %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// Record the override before anything saves or reloads, so /save and
	// the watcher follow the same file the user pointed at.
	if *configPath != "" {
		config.SetActivePath(*configPath)
	}
	cfg := loadConfig(*configPath)
	config.SetGlobal(cfg)

	p := tea.NewProgram(
		chat.New(cfg),
		tea.WithAltScreen(),
	)

	// Config edits made in another editor apply live. The watcher delivers
	// reloads through the program's message queue so the model never sees a
	// config swap mid-update.
	if watchPath, err := config.ActivePath(); err == nil {
		watcher, err := config.NewWatcher(watchPath, func(fresh *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Cfg: fresh})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watching disabled: %v\n", err)
		} else if err := watcher.Watch(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watching disabled: %v\n", err)
			watcher.Close()
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running parley: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration, falling back to defaults on failure
// so a broken config file never prevents startup.
func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.Default()
		cfg.ApplyEnvOverrides()
	}
	return cfg
}
