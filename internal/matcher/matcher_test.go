package matcher_test

import (
	"bytes"
	"testing"

	"github.com/MichalMitros/catalog-importer/internal/archive"
	"github.com/MichalMitros/catalog-importer/internal/matcher"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/klauspost/compress/zip"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSplitReferences(t *testing.T) {
	assert.Equal(t,
		[]string{"a.jpg", "b.jpg", "c.png", "d.gif"},
		matcher.SplitReferences(" A.jpg, b.jpg;;c.PNG | d.gif ,"),
	)
	assert.Empty(t, matcher.SplitReferences(""))
}

func TestUnitMatch(t *testing.T) {
	index := buildIndex(t, "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg", "g.jpg")

	tests := map[string]struct {
		matcher        *matcher.Matcher
		row            models.ImportRow
		rowIndex       int
		index          *archive.Index
		wantImages     []string
		wantMissing    []string
		wantPositional bool
	}{
		"explicit references": {
			matcher:    matcher.NewMatcher(),
			row:        models.ImportRow{ImageFiles: "B.jpg,a.jpg"},
			index:      index,
			wantImages: []string{"b.jpg", "a.jpg"},
		},
		"explicit references with missing name": {
			matcher:     matcher.NewMatcher(matcher.WithPositionalFallback(3)),
			row:         models.ImportRow{ImageFiles: "a.jpg|missing.jpg"},
			index:       index,
			wantImages:  []string{"a.jpg"},
			wantMissing: []string{"missing.jpg"},
		},
		"no references without fallback": {
			matcher:  matcher.NewMatcher(),
			row:      models.ImportRow{},
			rowIndex: 1,
			index:    index,
		},
		"unresolved references without fallback": {
			matcher:     matcher.NewMatcher(),
			row:         models.ImportRow{ImageFiles: "x.jpg"},
			index:       index,
			wantMissing: []string{"x.jpg"},
		},
		"positional fallback": {
			matcher:        matcher.NewMatcher(matcher.WithPositionalFallback(3)),
			row:            models.ImportRow{ImageFiles: "x.jpg"},
			rowIndex:       1,
			index:          index,
			wantImages:     []string{"d.jpg", "e.jpg", "f.jpg"},
			wantMissing:    []string{"x.jpg"},
			wantPositional: true,
		},
		"positional fallback partial slice": {
			matcher:        matcher.NewMatcher(matcher.WithPositionalFallback(3)),
			rowIndex:       2,
			index:          index,
			wantImages:     []string{"g.jpg"},
			wantPositional: true,
		},
		"positional fallback out of range": {
			matcher:  matcher.NewMatcher(matcher.WithPositionalFallback(3)),
			rowIndex: 5,
			index:    index,
		},
		"empty index": {
			matcher: matcher.NewMatcher(matcher.WithPositionalFallback(3)),
			row:     models.ImportRow{ImageFiles: "a.jpg"},
			index:   buildIndex(t),
		},
		"nil index": {
			matcher: matcher.NewMatcher(),
			row:     models.ImportRow{ImageFiles: "a.jpg"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := tt.matcher.Match(tt.row, tt.rowIndex, tt.index)

			names := lo.Map(result.Images, func(image models.Image, _ int) string { return image.Name })
			if len(tt.wantImages) == 0 {
				assert.Empty(t, names, "shouldn't match any image")
			} else {
				assert.Equal(t, tt.wantImages, names, "should match correct images in order")
			}
			assert.Equal(t, tt.wantMissing, result.Missing, "should report missing references")
			assert.Equal(t, tt.wantPositional, result.Positional, "should report positional assignment")
		})
	}
}

// buildIndex builds archive index with images named after provided names and containing their names.
func buildIndex(t *testing.T, names ...string) *archive.Index {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	index, err := archive.Extract(buf.Bytes())
	require.NoError(t, err)

	return index
}
