package model

// Package model defines domain data structures used across the app: radio
// stations, playback sessions, and phase enums. Structures are designed for
// direct binding in the UI and explicit state transitions.
