package identity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnkeyableName = errors.New("name cannot be keyed")

// CandidateKey addresses one player page on the statistics source.
type CandidateKey struct {
	LastInitial string
	NameKey     string
	Sequence    int
}

// NextCandidate derives the lookup key for name at the given attempt.
// The name is split naively on whitespace: the second token is the surname.
func NextCandidate(name string, attempt int) (CandidateKey, error) {
	if attempt < 0 || attempt > 99 {
		return CandidateKey{}, fmt.Errorf("%w: attempt %d out of range", ErrUnkeyableName, attempt)
	}

	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return CandidateKey{}, fmt.Errorf("%w: %q needs a first and last name", ErrUnkeyableName, name)
	}

	stripped := strings.Fields(strings.ReplaceAll(name, "-", ""))
	if len(stripped) < 2 {
		return CandidateKey{}, fmt.Errorf("%w: %q", ErrUnkeyableName, name)
	}

	return CandidateKey{
		LastInitial: firstRunes(tokens[1], 1),
		NameKey:     fmt.Sprintf("%s%s%02d", firstRunes(stripped[1], 4), firstRunes(stripped[0], 2), attempt),
		Sequence:    attempt,
	}, nil
}

// Path is the game log page path relative to the source root.
func (k CandidateKey) Path() string {
	return "/players/" + k.LastInitial + "/" + k.NameKey + "/gamelog/"
}

// URL joins Path onto baseURL.
func (k CandidateKey) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + k.Path()
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
