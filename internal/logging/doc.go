// Package logging assembles the slog loggers used across ripmap.
//
// Console output uses a compact single-line handler (coloured when stderr is
// a terminal) or JSON; NewFromConfig additionally mirrors every record as
// JSON into a dated file under the log directory and prunes old files.
// Components tag their lines through NewComponentLogger, and each CLI
// invocation carries a session_id so its lines can be grouped afterwards.
package logging
