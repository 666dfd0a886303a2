package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/airwav/airwav/internal/app"
	"github.com/airwav/airwav/internal/config"
	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/platform"
	"github.com/airwav/airwav/internal/player"
	"github.com/airwav/airwav/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	log := zerolog.New(io.Discard)
	if path, err := platform.LogFilePath(); err == nil {
		if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			defer file.Close()
			log = zerolog.New(file).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		}
	}
	log.Info().Str("version", version).Msg("airwav starting")

	settings, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}
	if settings.Debug {
		log = log.Level(zerolog.DebugLevel)
	}

	favorites, err := config.LoadFavorites()
	if err != nil {
		log.Warn().Err(err).Msg("favorites unavailable")
	}

	engine := player.NewEngine(player.NewBeepBackend(log), settings.Volume, log)
	defer engine.Close()

	client := directory.NewClient(settings.ServerURL, settings.UserAgent, log)
	machine := app.NewMachine(settings.Volume, log)
	root := ui.NewRoot(machine, engine, client, settings, favorites, log)

	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("program terminated")
		fmt.Fprintf(os.Stderr, "airwav: %v\n", err)
		os.Exit(1)
	}
}
