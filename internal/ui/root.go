package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/airwav/airwav/internal/app"
	"github.com/airwav/airwav/internal/config"
	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/model"
	"github.com/airwav/airwav/internal/player"
)

// Search form field indexes
const (
	fieldName = iota
	fieldCountry
	fieldTag
	fieldCount
)

// Root is the top-level bubbletea model. Its Update method is the only
// place application state changes, which keeps the ordering guarantees of
// the state machine intact.
type Root struct {
	machine   *app.Machine
	player    player.Controller
	searcher  directory.Searcher
	settings  *config.Settings
	favorites *config.Favorites

	stationList list.Model
	inputs      [fieldCount]textinput.Model
	focus       int
	spin        spinner.Model

	showHelp bool
	width    int
	height   int

	log zerolog.Logger
}

// NewRoot wires the interface to the state machine and its collaborators
func NewRoot(
	machine *app.Machine,
	controller player.Controller,
	searcher directory.Searcher,
	settings *config.Settings,
	favorites *config.Favorites,
	log zerolog.Logger,
) *Root {
	delegate := list.NewDefaultDelegate()
	stationList := list.New(nil, delegate, 0, 0)
	stationList.Title = "Stations"
	stationList.SetShowHelp(false)
	stationList.SetFilteringEnabled(false)
	stationList.SetShowStatusBar(false)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	root := &Root{
		machine:     machine,
		player:      controller,
		searcher:    searcher,
		settings:    settings,
		favorites:   favorites,
		stationList: stationList,
		spin:        sp,
		log:         log.With().Str("component", "ui").Logger(),
	}

	labels := [fieldCount]string{"station name", "country", "tag"}
	for i := range root.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.CharLimit = 64
		input.Width = 32
		root.inputs[i] = input
	}
	root.inputs[fieldName].Focus()

	return root
}

// Init starts the playback listener, the clock, and the startup search
func (r *Root) Init() tea.Cmd {
	cmds := []tea.Cmd{
		r.spin.Tick,
		listenPlayback(r.player.Events()),
		tickCmd(),
	}

	startup := directory.Query{
		Name:  r.settings.DefaultSearch,
		Limit: r.settings.ResultLimit,
	}
	cmds = append(cmds, r.dispatch(r.machine.SubmitSearch(startup))...)

	return tea.Batch(cmds...)
}

// Update folds one message into the state machine and re-arms listeners
func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		width := msg.Width
		if width < MinListWidth {
			width = MinListWidth
		}
		r.stationList.SetSize(width, msg.Height-HeaderHeight-FooterHeight)
		return r, nil

	case directoryResultMsg:
		for i := range msg.stations {
			msg.stations[i].Favorite = r.favorites.Contains(msg.stations[i].UUID)
		}
		cmds := r.dispatch(r.machine.HandleDirectoryResult(msg.generation, msg.stations, msg.err))
		r.syncList()
		return r, tea.Batch(cmds...)

	case playbackEventMsg:
		cmds := r.dispatch(r.machine.HandlePlaybackEvent(player.Event(msg)))
		r.syncList()
		cmds = append(cmds, listenPlayback(r.player.Events()))
		return r, tea.Batch(cmds...)

	case playbackClosedMsg:
		return r, nil

	case tickMsg:
		return r, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spin, cmd = r.spin.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	return r, nil
}

func (r *Root) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := msg.String(); key == "ctrl+c" {
		return r, tea.Quit
	}

	if r.machine.Snapshot().View == app.ViewSearch {
		return r.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return r, tea.Quit

	case "enter":
		return r, tea.Batch(r.selectCurrent()...)

	case " ":
		return r, tea.Batch(r.dispatch(r.machine.TogglePause())...)

	case "x":
		cmds := r.dispatch(r.machine.StopPlayback())
		r.syncList()
		return r, tea.Batch(cmds...)

	case "+", "=":
		return r, tea.Batch(r.dispatch(r.machine.AdjustVolume(r.settings.VolumeStep))...)

	case "-":
		return r, tea.Batch(r.dispatch(r.machine.AdjustVolume(-r.settings.VolumeStep))...)

	case "/":
		r.machine.EnterSearch()
		r.setFocus(fieldName)
		return r, textinput.Blink

	case "f":
		return r, r.toggleFavorite()

	case "n":
		r.machine.ToggleNowPlaying()
		return r, nil

	case "?":
		r.showHelp = !r.showHelp
		return r, nil

	case "esc":
		snap := r.machine.Snapshot()
		switch {
		case r.showHelp:
			r.showHelp = false
		case snap.Banner != nil:
			r.machine.DismissBanner()
		case snap.View == app.ViewNowPlaying:
			r.machine.ExitToBrowse()
		}
		return r, nil
	}

	if r.machine.Snapshot().View == app.ViewBrowse {
		var cmd tea.Cmd
		r.stationList, cmd = r.stationList.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *Root) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.machine.ExitToBrowse()
		return r, nil

	case "tab", "down":
		r.setFocus((r.focus + 1) % fieldCount)
		return r, textinput.Blink

	case "shift+tab", "up":
		r.setFocus((r.focus + fieldCount - 1) % fieldCount)
		return r, textinput.Blink

	case "enter":
		query := directory.Query{
			Name:    r.inputs[fieldName].Value(),
			Country: r.inputs[fieldCountry].Value(),
			Tag:     r.inputs[fieldTag].Value(),
			Limit:   r.settings.ResultLimit,
		}
		return r, tea.Batch(r.dispatch(r.machine.SubmitSearch(query))...)
	}

	var cmd tea.Cmd
	r.inputs[r.focus], cmd = r.inputs[r.focus].Update(msg)
	return r, cmd
}

func (r *Root) setFocus(index int) {
	r.focus = index
	for i := range r.inputs {
		if i == index {
			r.inputs[i].Focus()
		} else {
			r.inputs[i].Blur()
		}
	}
}

// selectCurrent starts the highlighted station, or stops it when it is the
// one already playing
func (r *Root) selectCurrent() []tea.Cmd {
	item, ok := r.stationList.SelectedItem().(stationItem)
	if !ok {
		return nil
	}

	snap := r.machine.Snapshot()
	if s := snap.Session; s != nil && s.Phase.IsActive() && s.Station.UUID == item.station.UUID {
		cmds := r.dispatch(r.machine.StopPlayback())
		r.syncList()
		return cmds
	}

	cmds := r.dispatch(r.machine.SelectStation(item.station))
	r.syncList()
	return cmds
}

// toggleFavorite flips the star on the highlighted station (or, in the
// now-playing view, the current one) and persists the set off the UI path
func (r *Root) toggleFavorite() tea.Cmd {
	var station *model.Station

	snap := r.machine.Snapshot()
	if snap.View == app.ViewNowPlaying {
		if snap.Session != nil {
			station = &snap.Session.Station
		}
	} else if item, ok := r.stationList.SelectedItem().(stationItem); ok {
		station = &item.station
	}
	if station == nil || station.UUID == "" {
		return nil
	}

	favorite := r.favorites.Toggle(station.UUID)
	r.machine.SetStationFavorite(station.UUID, favorite)
	r.syncList()

	store := r.favorites
	log := r.log
	return func() tea.Msg {
		if err := store.Save(); err != nil {
			log.Error().Err(err).Msg("saving favorites failed")
		}
		return nil
	}
}

// dispatch translates state machine commands into bubbletea commands. Engine
// calls run inside commands so a blocking dial never stalls the event loop.
func (r *Root) dispatch(commands []app.Command) []tea.Cmd {
	var cmds []tea.Cmd
	for _, command := range commands {
		switch c := command.(type) {
		case app.StartPlayback:
			id, url := c.SessionID, c.Station.StreamURL
			cmds = append(cmds, func() tea.Msg {
				r.player.Start(id, url)
				return nil
			})
		case app.StopPlayback:
			id := c.SessionID
			cmds = append(cmds, func() tea.Msg {
				r.player.Stop(id)
				return nil
			})
		case app.PausePlayback:
			cmds = append(cmds, func() tea.Msg {
				r.player.Pause()
				return nil
			})
		case app.ResumePlayback:
			cmds = append(cmds, func() tea.Msg {
				r.player.Resume()
				return nil
			})
		case app.SetVolume:
			level := c.Level
			cmds = append(cmds, func() tea.Msg {
				r.player.SetVolume(level)
				return nil
			})
		case app.Lookup:
			cmds = append(cmds, lookupCmd(r.searcher, c.Generation, c.Query))
		}
	}
	return cmds
}

// syncList rebuilds the station list items from the current snapshot
func (r *Root) syncList() {
	snap := r.machine.Snapshot()

	var playingUUID string
	if s := snap.Session; s != nil && s.Phase.IsActive() {
		playingUUID = s.Station.UUID
	}

	items := make([]list.Item, 0, len(snap.Stations))
	for _, station := range snap.Stations {
		items = append(items, stationItem{
			station: station,
			playing: station.UUID == playingUUID,
		})
	}
	r.stationList.SetItems(items)
}
