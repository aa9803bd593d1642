package swot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category is one of the four SWOT quadrants.
type Category string

const (
	Strengths     Category = "strengths"
	Weaknesses    Category = "weaknesses"
	Opportunities Category = "opportunities"
	Threats       Category = "threats"
)

// Item is one entry on a SWOT board.
type Item struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Result lists items added, removed and kept between two quarters. Items are
// reported with the text of the quarter they were read from.
type Result struct {
	Added   []Item `json:"added"`
	Removed []Item `json:"removed"`
	Kept    []Item `json:"kept"`
}

type itemKey struct {
	category Category
	text     string
}

func keyOf(it Item) itemKey {
	return itemKey{
		category: Category(strings.ToLower(strings.TrimSpace(string(it.Category)))),
		text:     strings.ToLower(strings.TrimSpace(it.Text)),
	}
}

// Diff compares quarter a to quarter b. Items are identified by category and
// case-insensitive trimmed text, so an edited item shows up as one removal and
// one addition. Duplicates within a quarter are reported once.
func Diff(a, b []Item) Result {
	inA := make(map[itemKey]bool, len(a))
	for _, it := range a {
		inA[keyOf(it)] = true
	}
	inB := make(map[itemKey]bool, len(b))
	for _, it := range b {
		inB[keyOf(it)] = true
	}

	res := Result{
		Added:   []Item{},
		Removed: []Item{},
		Kept:    []Item{},
	}

	seen := make(map[itemKey]bool, len(a))
	for _, it := range a {
		k := keyOf(it)
		if k.text == "" || seen[k] {
			continue
		}
		seen[k] = true
		if inB[k] {
			res.Kept = append(res.Kept, it)
		} else {
			res.Removed = append(res.Removed, it)
		}
	}

	seen = make(map[itemKey]bool, len(b))
	for _, it := range b {
		k := keyOf(it)
		if k.text == "" || seen[k] {
			continue
		}
		seen[k] = true
		if !inA[k] {
			res.Added = append(res.Added, it)
		}
	}

	return res
}

// DiffCategory diffs only the items of one category.
func DiffCategory(a, b []Item, category Category) Result {
	return Diff(filter(a, category), filter(b, category))
}

func filter(items []Item, category Category) []Item {
	want := strings.ToLower(strings.TrimSpace(string(category)))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.ToLower(strings.TrimSpace(string(it.Category))) == want {
			out = append(out, it)
		}
	}
	return out
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Strengths, Weaknesses, Opportunities, Threats:
		return c, nil
	}
	return "", fmt.Errorf("unknown swot category %q", s)
}

const (
	minYear = 1
	maxYear = 9999
)

// Quarter is a calendar quarter such as 2025-Q3. Years run 0001 to 9999.
type Quarter struct {
	Year    int
	Quarter int
}

var ErrInvalidQuarter = errors.New("invalid quarter")

// ParseQuarter parses "YYYY-QN" (case-insensitive).
func ParseQuarter(s string) (Quarter, error) {
	year, q, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "-Q")
	if !ok {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < minYear || y > maxYear {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 1 || n > 4 {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	return Quarter{Year: y, Quarter: n}, nil
}

// Previous returns the quarter before q. 0001-Q1 has none.
func (q Quarter) Previous() (Quarter, error) {
	if q.Quarter == 1 {
		if q.Year <= minYear {
			return Quarter{}, fmt.Errorf("%w: no quarter before %s", ErrInvalidQuarter, q)
		}
		return Quarter{Year: q.Year - 1, Quarter: 4}, nil
	}
	return Quarter{Year: q.Year, Quarter: q.Quarter - 1}, nil
}

func (q Quarter) String() string {
	return fmt.Sprintf("%04d-Q%d", q.Year, q.Quarter)
}
