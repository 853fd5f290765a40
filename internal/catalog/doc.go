// Package catalog stores the programs, seasons and episodes being ripped,
// along with each episode's rip history and the pending mappings made for a
// disc.
//
// The Store is a single SQLite database (modernc.org/sqlite, no cgo) guarded
// by an exclusive file lock, so two ripmap invocations never edit the same
// catalogue at once. Program names are matched case-insensitively after
// Unicode normalisation. Inserting or deleting an episode renumbers the rest
// of its season so numbering stays contiguous.
package catalog
