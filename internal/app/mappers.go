package app

import (
	"math"
	"strconv"
	"strings"

	"hotel_chat/internal/domain"
)

/********** alias registries **********/

var placeAliases = map[string][]string{
	"name":     {"name"},
	"vicinity": {"vicinity", "formatted_address", "address"},
	"lat":      {"geometry.location.lat", "location.lat", "lat"},
	"lng":      {"geometry.location.lng", "location.lng", "lng", "lon"},
	"rating":   {"rating"},
	"price":    {"price_level"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmpty: first non-empty string among the paths.
func firstNonEmpty(m map[string]any, paths ...string) *string {
	for _, p := range paths {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

// getFloatFlexible: number from several paths (float64/int/string like "4,5").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIntFlexible: int from several paths; "unknown" and other non-numeric
// strings count as absent.
func firstIntFlexible(m map[string]any, paths ...string) *int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			// price levels are whole steps; 2.5 is not "at most 2"
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				continue
			}
			x := int(v)
			return &x
		case int:
			x := v
			return &x
		case int64:
			x := int(v)
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** geocode mapper **********/

// mapCoords reads the location of a geocoding result; ok is false when the
// result carries no usable coordinates.
func mapCoords(r map[string]any) (domain.Coords, bool) {
	lat := getFloatFlexible(r, placeAliases["lat"]...)
	lng := getFloatFlexible(r, placeAliases["lng"]...)
	if lat == nil || lng == nil {
		return domain.Coords{}, false
	}
	return domain.Coords{Lat: *lat, Lng: *lng}, true
}

/********** place mapper **********/

func mapPlace(r map[string]any) domain.Place {
	p := domain.Place{
		Name:       firstNonEmpty(r, placeAliases["name"]...),
		Rating:     getFloatFlexible(r, placeAliases["rating"]...),
		PriceLevel: firstIntFlexible(r, placeAliases["price"]...),
		Vicinity:   firstNonEmpty(r, placeAliases["vicinity"]...),
	}
	p.Location, _ = mapCoords(r)
	return p
}

func mapPlaces(in []map[string]any) []domain.Place {
	out := make([]domain.Place, 0, len(in))
	for _, r := range in {
		out = append(out, mapPlace(r))
	}
	return out
}
