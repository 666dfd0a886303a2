package platform

// Package platform holds OS-facing helpers: user directory resolution,
// directory creation, and parsing of M3U/PLS playlist files that many
// station directories hand out instead of a direct stream URL.
