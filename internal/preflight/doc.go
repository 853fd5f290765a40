// Package preflight provides readiness checks for the filesystem paths and
// external programs ripmap depends on.
//
// The CLI "ripmap doctor" command runs RunAll and CheckSystemDeps and prints
// a table of the results. Scans call CheckSource first so a missing device
// is reported before HandBrake is started.
package preflight
