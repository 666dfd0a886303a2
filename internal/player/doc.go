package player

// Package player implements the playback engine. It owns the single live
// audio stream, accepts start/stop/pause/resume/volume commands, and reports
// transitions as session-tagged events on a bounded channel. The audio stack
// (HTTP dial, MP3 decode, speaker output via gopxl/beep) sits behind the
// Backend interface so tests can substitute a fake.
