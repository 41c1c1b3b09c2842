package app

import (
	"fmt"
	"strconv"
	"strings"

	"hotel_chat/internal/domain"
)

const (
	fallbackName    = "Unknown Hotel"
	fallbackRating  = "No rating"
	fallbackPrice   = "Unknown"
	fallbackAddress = "Unknown"

	mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="
)

var headlines = map[Branch]string{
	BranchSafe:  "Here are the safest budget hotels I found:",
	BranchRated: "No perfect safe-budget hotels found. Showing best rated nearby hotels!",
	BranchNone:  "No hotels found. Try another city!",
}

// transcript preambles differ from the on-screen headline for the rated branch
var preambles = map[Branch]string{
	BranchSafe:  "Here are the safest budget hotels I found:\n\n",
	BranchRated: "Here are some highly rated hotels you might like:\n\n",
}

// Block is one rendered hotel entry.
type Block struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Rating     string `json:"rating"`
	PriceLevel string `json:"price_level"`
	Address    string `json:"address"`
	MapURL     string `json:"map_url"`
}

type Presentation struct {
	Branch     Branch  `json:"branch"`
	Headline   string  `json:"headline"`
	Blocks     []Block `json:"blocks"`
	Transcript string  `json:"-"`
	Spoken     string  `json:"-"`
}

// Present formats a selected shortlist. It never fails; missing fields are
// replaced with fallback text.
func Present(query string, branch Branch, shortlist []domain.Place) Presentation {
	p := Presentation{
		Branch:   branch,
		Headline: headlines[branch],
		Blocks:   make([]Block, 0, len(shortlist)),
		Spoken:   spokenSummary(query, branch, len(shortlist)),
	}

	var lines strings.Builder
	for i, pl := range shortlist {
		b := toBlock(i+1, pl)
		p.Blocks = append(p.Blocks, b)
		fmt.Fprintf(&lines, "%d. %s, %s. Rating %s stars.\n", b.Index, b.Name, b.Address, b.Rating)
	}

	if pre, ok := preambles[branch]; ok {
		p.Transcript = pre + lines.String()
	} else {
		p.Transcript = p.Headline
	}
	return p
}

// MapLink builds the Google Maps search URL from raw coordinates.
func MapLink(c domain.Coords) string {
	return mapsSearchURL + formatFloat(c.Lat) + "," + formatFloat(c.Lng)
}

func toBlock(idx int, p domain.Place) Block {
	b := Block{
		Index:      idx,
		Name:       orDefault(p.Name, fallbackName),
		Rating:     fallbackRating,
		PriceLevel: fallbackPrice,
		Address:    orDefault(p.Vicinity, fallbackAddress),
		MapURL:     MapLink(p.Location),
	}
	if p.Rating != nil {
		b.Rating = formatFloat(*p.Rating)
	}
	if p.PriceLevel != nil {
		b.PriceLevel = strconv.Itoa(*p.PriceLevel)
	}
	return b
}

func spokenSummary(query string, branch Branch, n int) string {
	switch branch {
	case BranchSafe:
		return fmt.Sprintf("I found %d safe budget %s near %s.", n, plural(n, "hotel"), query)
	case BranchRated:
		return fmt.Sprintf("No perfect safe budget hotels near %s, but here %s %d highly rated %s.", query, plural(n, "is", "are"), n, plural(n, "option"))
	}
	return fmt.Sprintf("Sorry, I could not find any hotels near %s.", query)
}

func plural(n int, forms ...string) string {
	if n == 1 {
		return forms[0]
	}
	if len(forms) > 1 {
		return forms[1]
	}
	return forms[0] + "s"
}

// formatFloat prints the shortest representation that round-trips exactly.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func orDefault(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
