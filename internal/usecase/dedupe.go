package usecase

import "github.com/leadforge/leadforge-api/internal/entity"

// Dedupe drops candidates whose key already exists for the account, plus
// in-batch duplicates. Dropping is silent: recurring campaigns are expected
// to re-source contacts they already own.
func Dedupe(candidates []entity.CandidateContact, existingKeys map[string]bool) []entity.CandidateContact {
	seen := make(map[string]bool, len(candidates))
	out := make([]entity.CandidateContact, 0, len(candidates))

	for _, c := range candidates {
		key := c.DedupeKey()
		if key == "" || key == "|" {
			continue // nothing to identify the contact by
		}
		if existingKeys[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
