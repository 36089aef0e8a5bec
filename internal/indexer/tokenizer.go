package indexer

import "strings"

// gramSize is the n in the n-gram postings. Queries shorter than this cannot
// use the postings and fall back to a scan.
const gramSize = 3

// Normalize prepares text for matching: surrounding whitespace trimmed and
// lowercased. Queries and indexed fields go through the same function so a
// substring test on normalized values is a case-insensitive substring test.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Trigrams returns the distinct rune trigrams of s in first-seen order.
// s is used as given; callers lowercase first.
func Trigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < gramSize {
		return nil
	}

	seen := make(map[string]struct{}, len(runes))
	grams := make([]string, 0, len(runes)-gramSize+1)
	for i := 0; i+gramSize <= len(runes); i++ {
		g := string(runes[i : i+gramSize])
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		grams = append(grams, g)
	}
	return grams
}
