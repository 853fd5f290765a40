package disc

import (
	"fmt"
	"strings"
)

// Policy selects which members of a duplicate run are offered for mapping.
type Policy string

const (
	PolicyAll   Policy = "all"
	PolicyFirst Policy = "first"
	PolicyLast  Policy = "last"
)

// ParsePolicy validates a duplicate policy name.
func ParsePolicy(value string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(value))); p {
	case PolicyAll, PolicyFirst, PolicyLast:
		return p, nil
	case "":
		return PolicyAll, nil
	default:
		return "", fmt.Errorf("invalid duplicate policy %q (want all, first or last)", value)
	}
}

// MarkDuplicates tags adjacent titles with equal durations as a duplicate run.
// Titles outside any run are reset to DuplicateNo.
func MarkDuplicates(titles []*Title) {
	for _, t := range titles {
		t.Duplicate = DuplicateNo
	}
	var previous *Title
	for _, title := range titles {
		if previous != nil {
			if previous.Duration == title.Duration {
				if previous.Duplicate == DuplicateNo {
					previous.Duplicate = DuplicateFirst
				}
				title.Duplicate = DuplicateYes
			} else if previous.Duplicate == DuplicateYes {
				previous.Duplicate = DuplicateLast
			}
		}
		previous = title
	}
	if previous != nil && previous.Duplicate == DuplicateYes {
		previous.Duplicate = DuplicateLast
	}
}

// Allows reports whether the policy admits the title.
func (p Policy) Allows(t *Title) bool {
	switch {
	case t.Duplicate == DuplicateNo, p == PolicyAll:
		return true
	case p == PolicyFirst:
		return t.Duplicate == DuplicateFirst
	case p == PolicyLast:
		return t.Duplicate == DuplicateLast
	default:
		return false
	}
}

// FilterDuplicates returns the titles admitted by the policy, preserving order.
func FilterDuplicates(titles []*Title, policy Policy) []*Title {
	out := make([]*Title, 0, len(titles))
	for _, t := range titles {
		if policy.Allows(t) {
			out = append(out, t)
		}
	}
	return out
}

// MarkRun manually tags titles first..last (inclusive, by position) as one
// duplicate run, adjusting the neighbouring titles so existing runs stay
// well formed. A single-title range clears the title's duplicate status.
func MarkRun(titles []*Title, first, last int) error {
	if first < 0 || last >= len(titles) || first > last {
		return fmt.Errorf("invalid title range %d-%d", first, last)
	}
	if first == last {
		titles[first].Duplicate = DuplicateNo
	} else {
		titles[first].Duplicate = DuplicateFirst
		for i := first + 1; i < last; i++ {
			titles[i].Duplicate = DuplicateYes
		}
		titles[last].Duplicate = DuplicateLast
	}
	if first > 0 {
		prev := titles[first-1]
		switch prev.Duplicate {
		case DuplicateFirst:
			prev.Duplicate = DuplicateNo
		case DuplicateYes:
			prev.Duplicate = DuplicateLast
		}
	}
	if last < len(titles)-1 {
		next := titles[last+1]
		switch next.Duplicate {
		case DuplicateLast:
			next.Duplicate = DuplicateNo
		case DuplicateYes:
			next.Duplicate = DuplicateFirst
		}
	}
	return nil
}
