package usecase

import (
	"strings"

	"github.com/leadforge/leadforge-api/internal/entity"
)

// Scoring weights. The total of all maxima is exactly 100; the result is
// clamped anyway so extreme inputs can never escape [0,100].
//
//	title seniority            up to 30
//	verification confidence    up to 30
//	industry match             up to 15
//	company-size match         up to 10
//	geographic match           up to 15
const (
	maxTitlePoints        = 30
	maxVerificationPoints = 30
	maxIndustryPoints     = 15
	maxCompanySizePoints  = 10
	maxGeoPoints          = 15
)

// seniorityTiers maps title fragments to points, highest tier first.
var seniorityTiers = []struct {
	points    int
	fragments []string
}{
	{30, []string{"ceo", "chief executive", "founder", "owner", "president", "managing director"}},
	{22, []string{"chief", "vp", "vice president", "director", "head of", "general manager"}},
	{15, []string{"manager", "principal", "lead", "partner"}},
}

// employee ranges behind the criteria size buckets.
var sizeBuckets = map[string][2]int{
	entity.SizeStartup:    {1, 10},
	entity.SizeSmall:      {11, 50},
	entity.SizeMedium:     {51, 200},
	entity.SizeLarge:      {201, 500},
	entity.SizeEnterprise: {501, 1000},
	entity.SizeVeryLarge:  {1001, 1 << 30},
}

// Score computes the 0-100 quality score of a candidate. It is a pure
// function of its inputs: identical input always yields an identical score.
func Score(c entity.CandidateContact, verificationConfidence float64, criteria entity.Criteria) int {
	score := titleScore(c.Title, criteria.Titles) +
		verificationScore(verificationConfidence) +
		industryScore(c.Industry, criteria.Industries) +
		companySizeScore(c.CompanySize, criteria.CompanySizes) +
		geoScore(c.Location, criteria.Locations)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func titleScore(title string, wanted []string) int {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return 0
	}
	best := 8 // any title at all is worth something
	for _, tier := range seniorityTiers {
		for _, frag := range tier.fragments {
			if strings.Contains(t, frag) && tier.points > best {
				best = tier.points
			}
		}
	}
	// An explicit title-criteria match counts as a top-tier hit.
	for _, w := range wanted {
		if w != "" && strings.Contains(t, strings.ToLower(strings.TrimSpace(w))) {
			return maxTitlePoints
		}
	}
	return best
}

func verificationScore(confidence float64) int {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return int(confidence*maxVerificationPoints + 0.5)
}

func industryScore(industry string, wanted []string) int {
	ind := strings.ToLower(strings.TrimSpace(industry))
	if ind == "" {
		return 0
	}
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && (strings.Contains(ind, w) || strings.Contains(w, ind)) {
			return maxIndustryPoints
		}
	}
	return 5
}

func companySizeScore(size int, wantedBuckets []string) int {
	if size <= 0 {
		return 0
	}
	for _, b := range wantedBuckets {
		if r, ok := sizeBuckets[b]; ok && size >= r[0] && size <= r[1] {
			return maxCompanySizePoints
		}
	}
	// 50-500 employees is the historical sweet spot for B2B outreach.
	if size >= 50 && size <= 500 {
		return 6
	}
	return 2
}

func geoScore(location string, wanted []string) int {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return 0
	}
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && (strings.Contains(loc, w) || strings.Contains(w, loc)) {
			return maxGeoPoints
		}
	}
	return 4
}
