package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitutionTargetsNeverMatchASource(t *testing.T) {
	for _, target := range substitutionTable {
		if target.to == "" {
			continue
		}
		for _, source := range substitutionTable {
			assert.False(t, source.re.MatchString(target.to),
				"%q rewrites to %q, which %q would rewrite again", target.from, target.to, source.from)
		}
	}
}
