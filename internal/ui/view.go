package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/airwav/airwav/internal/app"
	"github.com/airwav/airwav/internal/model"
)

const volumeBarWidth = 20

// stationItem adapts a station to the bubbles list delegate
type stationItem struct {
	station model.Station
	playing bool
}

func (i stationItem) Title() string {
	title := i.station.DisplayName()
	if i.station.Favorite {
		title = favoriteStyle.Render("★ ") + title
	}
	if i.playing {
		title = playingMarkStyle.Render("▶ ") + title
	}
	return title
}

func (i stationItem) Description() string { return i.station.TagLine() }
func (i stationItem) FilterValue() string { return i.station.Name }

// View renders the current snapshot
func (r *Root) View() string {
	snap := r.machine.Snapshot()

	var b strings.Builder
	b.WriteString(r.renderHeader(snap))
	b.WriteString("\n")

	switch snap.View {
	case app.ViewSearch:
		b.WriteString(r.renderSearch())
	case app.ViewNowPlaying:
		b.WriteString(r.renderNowPlaying(snap))
	default:
		b.WriteString(r.stationList.View())
	}

	b.WriteString("\n")
	if snap.Banner != nil {
		b.WriteString(bannerStyle.Render(snap.Banner.Message))
		b.WriteString("\n")
	}
	if r.showHelp {
		b.WriteString(r.renderHelp())
		b.WriteString("\n")
	}
	b.WriteString(r.renderFooter(snap))

	return b.String()
}

func (r *Root) renderHeader(snap app.State) string {
	title := titleStyle.Render("airwav")
	volume := statusStyle.Render(fmt.Sprintf("vol %3d%% %s", snap.Volume, renderVolumeBar(snap.Volume)))

	gap := r.width - lipgloss.Width(title) - lipgloss.Width(volume)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + volume
}

func (r *Root) renderSearch() string {
	labels := [fieldCount]string{"Name", "Country", "Tag"}

	var b strings.Builder
	b.WriteString(searchLabelStyle.Render("Search stations"))
	b.WriteString("\n\n")
	for i := range r.inputs {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", labels[i], r.inputs[i].View()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  enter search · tab next field · esc back"))
	return b.String()
}

func (r *Root) renderNowPlaying(snap app.State) string {
	session := snap.Session
	if session == nil {
		return nowPlayingStyle.Render("Nothing playing.\n\nPress enter on a station to tune in.")
	}

	station := session.Station
	name := station.DisplayName()
	if station.Favorite {
		name = favoriteStyle.Render("★ ") + name
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("\n")
	if line := station.TagLine(); line != "" {
		b.WriteString(statusStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	phase := session.Phase.String()
	if session.Buffering {
		phase = r.spin.View() + " buffering"
	}
	b.WriteString(fmt.Sprintf("%-10s %s\n", phase, session.GetElapsedString()))
	b.WriteString(fmt.Sprintf("%-10s %s %d%%\n", "volume", renderVolumeBar(snap.Volume), snap.Volume))
	if session.LastError != "" {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(session.LastError))
	}

	return nowPlayingStyle.Render(b.String())
}

func (r *Root) renderFooter(snap app.State) string {
	var status string
	switch {
	case snap.PendingLookup:
		status = r.spin.View() + " searching..."
	case snap.Session != nil && !snap.Session.Phase.IsTerminal():
		session := snap.Session
		marker := "▶"
		if session.Phase == model.PhasePaused {
			marker = "⏸"
		}
		if session.Buffering {
			marker = r.spin.View()
		}
		status = fmt.Sprintf("%s %s · %s · %s",
			marker, session.Station.DisplayName(), session.Phase, session.GetElapsedString())
	default:
		status = fmt.Sprintf("%d stations", len(snap.Stations))
	}

	return statusStyle.Render(status) + "\n" +
		helpStyle.Render("enter play · space pause · / search · n now playing · ? help · q quit")
}

func (r *Root) renderHelp() string {
	rows := []string{
		"enter      play selected station (again to stop)",
		"space      pause / resume",
		"x          stop playback",
		"+ / -      volume up / down",
		"/          search the directory",
		"f          toggle favorite",
		"n          now playing view",
		"esc        dismiss / back",
		"q          quit",
	}
	return helpStyle.Render("  " + strings.Join(rows, "\n  "))
}

func renderVolumeBar(volume int) string {
	filled := volume * volumeBarWidth / 100
	return volumeBarFilled.Render(strings.Repeat("█", filled)) +
		volumeBarEmpty.Render(strings.Repeat("░", volumeBarWidth-filled))
}
