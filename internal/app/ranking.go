package app

import "hotel_chat/internal/domain"

const (
	ShortlistSize = 5

	safeMinRating  = 4.0
	safeMaxPrice   = 2
	ratedMinRating = 3.8
)

type Shortlists struct {
	Safe  []domain.Place
	Rated []domain.Place
}

type Branch string

const (
	BranchSafe             Branch = "safe"
	BranchRated            Branch = "rated"
	BranchNone             Branch = "none"
	BranchLocationNotFound Branch = "location_not_found"
	BranchError            Branch = "error"
)

// Label classifies a single place. Safe is checked first, so a place that
// qualifies as Safe is never Rated.
func Label(p domain.Place) domain.Label {
	rating := 0.0
	if p.Rating != nil {
		rating = *p.Rating
	}
	if rating >= safeMinRating && p.PriceLevel != nil && *p.PriceLevel <= safeMaxPrice {
		return domain.LabelSafe
	}
	if rating >= ratedMinRating {
		return domain.LabelRated
	}
	return domain.LabelNone
}

// Classify partitions places into safe and rated shortlists, keeping
// encounter order and the first ShortlistSize of each.
func Classify(places []domain.Place) Shortlists {
	var out Shortlists
	for _, p := range places {
		switch Label(p) {
		case domain.LabelSafe:
			out.Safe = append(out.Safe, p)
		case domain.LabelRated:
			out.Rated = append(out.Rated, p)
		}
	}
	out.Safe = truncate(out.Safe, ShortlistSize)
	out.Rated = truncate(out.Rated, ShortlistSize)
	return out
}

// Select picks the shortlist shown to the user: safe first, then rated.
func Select(s Shortlists) (Branch, []domain.Place) {
	switch {
	case len(s.Safe) > 0:
		return BranchSafe, s.Safe
	case len(s.Rated) > 0:
		return BranchRated, s.Rated
	}
	return BranchNone, nil
}

func truncate(ps []domain.Place, n int) []domain.Place {
	if len(ps) > n {
		return ps[:n]
	}
	return ps
}
