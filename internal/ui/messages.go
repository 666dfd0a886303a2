package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/model"
	"github.com/airwav/airwav/internal/player"
)

// Messages delivered to the root model's Update
type (
	// directoryResultMsg carries a finished lookup tagged with its generation
	directoryResultMsg struct {
		generation uint64
		stations   []model.Station
		err        error
	}

	// playbackEventMsg wraps one engine event
	playbackEventMsg player.Event

	// playbackClosedMsg signals that the engine's event channel is gone
	playbackClosedMsg struct{}

	// tickMsg refreshes time-dependent parts of the view
	tickMsg time.Time
)

const (
	tickInterval  = time.Second
	lookupTimeout = 10 * time.Second
)

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenPlayback waits for the next engine event; the root model re-arms it
// after every received event so the bus keeps draining
func listenPlayback(events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return playbackClosedMsg{}
		}
		return playbackEventMsg(event)
	}
}

// lookupCmd runs one directory search off the UI path and reports the result
// with its generation for staleness filtering
func lookupCmd(searcher directory.Searcher, generation uint64, query directory.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		stations, err := searcher.Search(ctx, query)
		return directoryResultMsg{generation: generation, stations: stations, err: err}
	}
}
