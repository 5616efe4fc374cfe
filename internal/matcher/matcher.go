package matcher

import (
	"regexp"
	"strings"

	"github.com/MichalMitros/catalog-importer/internal/archive"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/samber/lo"
)

var referenceSeparator = regexp.MustCompile(`[,;|]`)

// Result is set of images matched to single row.
// The first image is the primary one.
type Result struct {
	Images []models.Image
	// Missing holds explicit references which weren't found in the archive.
	Missing []string
	// Positional is true when images were assigned by row position.
	Positional bool
}

// Option is custom configuration of Matcher.
type Option func(m *Matcher)

// Matcher resolves spreadsheet rows to archive images.
type Matcher struct {
	positionalPerRow int
}

// NewMatcher returns new Matcher. Positional assignment is disabled unless WithPositionalFallback is used.
func NewMatcher(ops ...Option) *Matcher {
	m := &Matcher{}

	for _, op := range ops {
		op(m)
	}

	return m
}

// Positional reports whether positional fallback is enabled.
func (m *Matcher) Positional() bool {
	return m.positionalPerRow > 0
}

// Match resolves images for row with zero-based rowIndex.
// Explicit file references are looked up first. When none of them resolves and positional fallback
// is enabled, a contiguous slice of sorted archive keys is assigned based on rowIndex.
func (m *Matcher) Match(row models.ImportRow, rowIndex int, index *archive.Index) Result {
	var result Result
	if index == nil || index.Len() == 0 {
		return result
	}

	for _, ref := range SplitReferences(row.ImageFiles) {
		image, ok := index.Lookup(ref)
		if !ok {
			result.Missing = append(result.Missing, ref)
			continue
		}
		result.Images = append(result.Images, image)
	}

	if len(result.Images) > 0 || !m.Positional() {
		return result
	}

	keys := index.SortedKeys()
	start := rowIndex * m.positionalPerRow
	end := min(start+m.positionalPerRow, len(keys))
	for ix := start; ix < end; ix++ {
		image, _ := index.Lookup(keys[ix])
		result.Images = append(result.Images, image)
	}
	result.Positional = len(result.Images) > 0

	return result
}

// SplitReferences splits image reference cell on comma, semicolon and pipe.
// References are trimmed and lower-cased, empty ones are dropped.
func SplitReferences(cell string) []string {
	parts := referenceSeparator.Split(cell, -1)
	parts = lo.Map(parts, func(part string, _ int) string {
		return strings.ToLower(strings.TrimSpace(part))
	})

	return lo.Filter(parts, func(part string, _ int) bool { return part != "" })
}

// WithPositionalFallback enables positional assignment of perRow images for rows without resolved references.
func WithPositionalFallback(perRow int) Option {
	return func(m *Matcher) {
		m.positionalPerRow = perRow
	}
}
