// Package accuracy scores OCR extraction quality against known-correct
// ground truth. It is a QA utility used by regression tests and the
// evaluate command, never by the production scan path.
package accuracy

// Levenshtein returns the character-level edit distance between two strings.
// Distances are computed over runes so mixed Latin/CJK text is counted per
// character rather than per byte.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// CER returns the character error rate of actual against expected, as a
// percentage of the expected length:
//
//	CER = Levenshtein(expected, actual) / len(expected) * 100
//
// The formula is undefined for an empty expected string; by convention the
// result is then 0 when actual is also empty and 100 otherwise.
func CER(expected, actual string) float64 {
	expectedLen := len([]rune(expected))
	if expectedLen == 0 {
		if len([]rune(actual)) == 0 {
			return 0
		}
		return 100
	}
	return float64(Levenshtein(expected, actual)) / float64(expectedLen) * 100
}
