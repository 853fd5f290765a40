// Package session joins the catalogue, the scanned disc and the episode map
// into the state one ripmap invocation works on.
//
// A Session is opened for the disc in the scan cache and the configured
// program season. On open it restores two kinds of binding into its map:
// episodes whose rip history names this disc, and pending mappings saved by
// an earlier invocation. Every change to the map is written back to the
// catalogue so the next command sees it.
//
// Session is not safe for concurrent use; the catalogue lock already limits
// a database to one ripmap process.
package session
