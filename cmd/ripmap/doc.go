// Package main hosts the ripmap CLI entrypoint and command graph.
//
// Each invocation is one-shot: "ripmap scan" saves the HandBrake scan of the
// disc, and every later command reloads the disc from that cache and the
// session state from the catalogue. Commands resolve configuration once
// through commandContext and leave the mapping logic to internal/session.
package main
