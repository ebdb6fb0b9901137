// Package textutil provides small text-matching helpers shared by the
// interactive search bar and the command palette suggestions.
package textutil

// HasSubsequence reports whether query occurs in s as an ordered
// subsequence: every character of query appears in s in the same relative
// order, not necessarily contiguously. The empty query matches everything.
//
// The scan is a single linear pass over s, so it stays cheap even for very
// large cell values.
func HasSubsequence(s, query string) bool {
	if query == "" {
		return true
	}
	qr := []rune(query)
	qi := 0
	for _, r := range s {
		if r == qr[qi] {
			qi++
			if qi == len(qr) {
				return true
			}
		}
	}
	return false
}

// MatchesAny reports whether query is a subsequence of any of the given
// candidates. Used to decide whether a row survives an incremental search.
func MatchesAny(candidates []string, query string) bool {
	if query == "" {
		return true
	}
	for _, c := range candidates {
		if HasSubsequence(c, query) {
			return true
		}
	}
	return false
}
