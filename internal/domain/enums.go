package domain

import (
	"fmt"
	"sort"
	"strings"
)

type Interest string

const (
	InterestCulture    Interest = "culture"
	InterestNature     Interest = "nature"
	InterestFood       Interest = "food"
	InterestAdventure  Interest = "adventure"
	InterestRelaxation Interest = "relaxation"
	InterestShopping   Interest = "shopping"
	InterestHistory    Interest = "history"
	InterestNightlife  Interest = "nightlife"
)

// InterestInfo pairs a catalog identifier with its display label.
type InterestInfo struct {
	ID    Interest
	Label string
}

var interestCatalog = []InterestInfo{
	{InterestCulture, "Culture"},
	{InterestNature, "Nature"},
	{InterestFood, "Food"},
	{InterestAdventure, "Adventure"},
	{InterestRelaxation, "Relaxation"},
	{InterestShopping, "Shopping"},
	{InterestHistory, "History"},
	{InterestNightlife, "Nightlife"},
}

// Catalog returns the selectable interests in display order.
func Catalog() []InterestInfo {
	out := make([]InterestInfo, len(interestCatalog))
	copy(out, interestCatalog)
	return out
}

// ValidInterest reports whether i is part of the catalog.
func ValidInterest(i Interest) bool {
	for _, info := range interestCatalog {
		if info.ID == i {
			return true
		}
	}
	return false
}

// ParseInterest accepts either the identifier or the label, case-insensitively.
func ParseInterest(s string) (Interest, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, info := range interestCatalog {
		if string(info.ID) == needle || strings.ToLower(info.Label) == needle {
			return info.ID, nil
		}
	}
	return "", fmt.Errorf("unknown interest %q", s)
}

// Label returns the display label, or the raw identifier for unknown values.
func (i Interest) Label() string {
	for _, info := range interestCatalog {
		if info.ID == i {
			return info.Label
		}
	}
	return string(i)
}

// InterestSet is an unordered set of interests.
type InterestSet map[Interest]struct{}

func NewInterestSet(interests ...Interest) InterestSet {
	s := make(InterestSet, len(interests))
	for _, i := range interests {
		s[i] = struct{}{}
	}
	return s
}

// Toggle removes i when present and adds it when absent. A nil set is
// allocated on first use.
func (s *InterestSet) Toggle(i Interest) {
	if *s == nil {
		*s = make(InterestSet)
	}
	if _, ok := (*s)[i]; ok {
		delete(*s, i)
		return
	}
	(*s)[i] = struct{}{}
}

func (s InterestSet) Has(i Interest) bool {
	_, ok := s[i]
	return ok
}

func (s InterestSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s InterestSet) Sorted() []Interest {
	out := make([]Interest, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

type WeatherCategory string

const (
	WeatherClear         WeatherCategory = "clear"
	WeatherCloudy        WeatherCategory = "cloudy"
	WeatherPrecipitation WeatherCategory = "precipitation"
)
