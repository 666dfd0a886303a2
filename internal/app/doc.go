package app

// Package app holds the application state machine: the single authority over
// UI-visible state. It consumes one event at a time, returns the outbound
// commands the event implies, and exposes immutable snapshots for rendering.
// Stale playback events and stale directory results are filtered here by
// session id and search generation; no other cancellation exists.
