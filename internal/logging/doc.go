// Package logging provides file-based structured logging with rotation
// for userpeek. The interactive widget owns the terminal, so logs go to
// ~/.userpeek/logs/ by default; stderr mirroring is reserved for the
// non-interactive CLI commands.
package logging
