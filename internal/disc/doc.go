// Package disc models the layout of a scanned DVD or Blu-ray and talks to the
// external tools that read it.
//
// A Disc holds Titles, each split into Chapters with known durations. The
// Scanner runs HandBrakeCLI and parses its JSON scan; LoadScan rereads a saved
// scan. Runs of adjacent titles with equal durations are tagged as duplicates
// so callers can offer only one member of each run for mapping. Player opens
// a title or chapter in VLC for previewing.
package disc
