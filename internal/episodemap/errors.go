package episodemap

import "errors"

// ErrMap is matched by every error this package produces.
var ErrMap = errors.New("episode map error")

var (
	// ErrNoEpisodes reports an automap request with nothing to map.
	ErrNoEpisodes = newKind("no episodes available for mapping (new season?)")
	// ErrInvalidDuration reports a duration window whose maximum precedes its minimum.
	ErrInvalidDuration = newKind("max duration must be at least min duration")
	// ErrNoMapping reports that title-based mapping bound nothing. Automap
	// recovers from it by falling back to chapter-based mapping.
	ErrNoMapping = newKind("no mapping for any titles found")
	// ErrNoSolutions reports that no chapter partition satisfies the constraints.
	ErrNoSolutions = newKind("no chapter mappings found")
	// ErrMultipleSolutions reports ambiguity with no disambiguator to resolve it.
	ErrMultipleSolutions = newKind("multiple possible chapter mappings found")
	// ErrAbandoned reports that the disambiguator quit.
	ErrAbandoned = newKind("abandoned automap at user request")
	// ErrInvalidTarget reports a value that is neither a title nor a chapter range.
	ErrInvalidTarget = newKind("mapping value is not a title or two chapters")
	// ErrDuplicateTarget reports a target already bound to another episode.
	ErrDuplicateTarget = newKind("target already mapped to another episode")
	// ErrKeyNotFound reports a deletion of an episode that is not mapped.
	ErrKeyNotFound = newKind("episode not in map")
)

type kindError struct {
	msg string
}

func newKind(msg string) error {
	return &kindError{msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return ErrMap }
