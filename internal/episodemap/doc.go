// Package episodemap binds catalogue episodes to the disc content they will
// be ripped from.
//
// An EpisodeMap holds one Target per episode: either a whole title or an
// inclusive chapter range within one title. No target is ever bound to two
// episodes and iteration always follows episode number.
//
// Automap proposes a mapping in three tiers: episode-length titles first,
// then chapter partitions of the longest title, then chapter partitions
// across every candidate title. Chapter partitions come from Search, and
// when several fit equally well a Disambiguator (usually an interactive
// prompt) picks between them one starting chapter at a time.
//
// Every error returned here matches ErrMap via errors.Is.
package episodemap
