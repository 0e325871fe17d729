package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		distance int
	}{
		{"identical", "0928-568-881", "0928-568-881", 0},
		{"empty both", "", "", 0},
		{"empty left", "", "abc", 3},
		{"empty right", "abc", "", 3},
		{"classic", "kitten", "sitting", 3},
		{"single substitution", "abc", "abd", 1},
		{"cjk substitution", "台北市", "台中市", 1},
		{"cjk insertion", "總經理", "副總經理", 1},
		{"mixed scripts", "鄭禾珈 Appa", "鄭禾珈 Appa", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.distance, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.distance, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestCERIdenticalIsZero(t *testing.T) {
	assert.Zero(t, CER("john.doe@acme.com", "john.doe@acme.com"))
	assert.Zero(t, CER("台北市大同區承德路一段17號9樓", "台北市大同區承德路一段17號9樓"))
}

func TestCERCountsRunesNotBytes(t *testing.T) {
	// One wrong character out of three; per-byte scoring would be far off.
	assert.InDelta(t, 100.0/3.0, CER("台北市", "台中市"), 1e-9)
}

func TestCERMonotonicInEditDistance(t *testing.T) {
	expected := "0928-568-881"
	actuals := []string{
		"0928-568-881",
		"0928-568-882",
		"0928-568-992",
		"0929-569-992",
		"completely off",
	}
	prev := -1.0
	for _, actual := range actuals {
		cer := CER(expected, actual)
		assert.GreaterOrEqual(t, cer, prev, "CER must not decrease as edits accumulate (actual %q)", actual)
		prev = cer
	}
}

func TestCEREmptyExpectedConvention(t *testing.T) {
	assert.Equal(t, 0.0, CER("", ""))
	assert.Equal(t, 100.0, CER("", "anything"))
}
