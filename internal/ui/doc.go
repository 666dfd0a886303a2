// Package ui implements the terminal interface as a bubbletea program. The
// root model is the single consumer of all asynchronous events (key input,
// directory results, playback events, ticks); it drives the app state
// machine, translates the machine's commands into engine calls and lookups,
// and renders read-only snapshots.
package ui
