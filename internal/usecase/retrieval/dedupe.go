package retrieval

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"filings-qa/internal/domain"
)

// fingerprintPrefixLen caps the normalized text hashed for deduplication.
// Passages with identical openings collapse even if they diverge later; a
// small false-duplicate risk traded for robust boilerplate removal.
const fingerprintPrefixLen = 160

// Fingerprint hashes the normalized text of a chunk: whitespace runs
// collapsed to single spaces, lowercased, truncated to the prefix length.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if runes := []rune(normalized); len(runes) > fingerprintPrefixLen {
		normalized = string(runes[:fingerprintPrefixLen])
	}
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Dedupe drops candidates whose fingerprint was already seen earlier in the
// pool, keeping the first occurrence. Surviving chunks retain their relative
// order. State is per call; nothing is shared across requests.
func Dedupe(chunks []domain.FilingChunk) []domain.FilingChunk {
	seen := make(map[string]struct{}, len(chunks))
	kept := make([]domain.FilingChunk, 0, len(chunks))
	for _, c := range chunks {
		fp := Fingerprint(c.Text)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		kept = append(kept, c)
	}
	return kept
}
