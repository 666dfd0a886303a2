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
	log, closeLog := newLogger()
	defer closeLog()
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

	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("program terminated")
		fmt.Fprintf(os.Stderr, "airwav: %v\n", err)
		os.Exit(1)
	}

	log.Info().Msg("airwav stopped")
}

// newLogger writes structured logs to a file in the cache directory; the
// terminal belongs to the interface
func newLogger() (zerolog.Logger, func()) {
	path, err := platform.LogFilePath()
	if err != nil {
		return zerolog.New(io.Discard), func() {}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.New(io.Discard), func() {}
	}

	log := zerolog.New(file).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return log, func() { file.Close() }
}
