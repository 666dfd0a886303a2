package directory

// Package directory implements the station catalog gateway on top of a
// radio-browser.info compatible HTTP API. Every call is independent and
// context-cancellable; failures come back as typed LookupError values so the
// state machine can fold them into an error banner instead of crashing.
