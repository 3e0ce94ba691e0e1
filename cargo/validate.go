package cargo

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cargo-instruments/pkg"
)

// maxSuggestions bounds the "did you mean" list of a missing target.
const maxSuggestions = 3

// Validate checks that p declares t before anything is built. The main
// binary is satisfied by any bin target; the others need a target of the
// same kind with exactly the same name.
func Validate(t Target, p Package) error {
	var candidates []string

	for _, info := range p.Targets {
		if !info.Is(t.kind) {
			continue
		}

		if t.kind == KindMain || info.Name == t.name {
			return nil
		}

		candidates = append(candidates, info.Name)
	}

	err := pkg.ErrMissingTarget.Wrapf("%s", t.describe())

	if s := Suggest(t.name, candidates); len(s) > 0 {
		err = err.Wrapf("did you mean %s?", strings.Join(s, " or "))
	}

	return err
}

// Suggest returns up to three candidates fuzzily matching name, best match
// first.
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, candidates)

	var s []string

	for _, m := range matches {
		if len(s) == maxSuggestions {
			break
		}

		s = append(s, m.Str)
	}

	return s
}
