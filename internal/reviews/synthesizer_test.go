package reviews_test

import (
	"testing"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/reviews"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestUnitGenerate(t *testing.T) {
	syn := reviews.NewSynthesizer(reviews.WithClock(fakeClock{now: &now}))

	result := syn.Generate(42, 300)

	require.Len(t, result, 300, "should generate exactly requested number of reviews")
	for ix, review := range result {
		assert.Equal(t, 42, review.ProductID)
		assert.Contains(t, []int{4, 5}, review.Rating, "rating should be 4 or 5")
		assert.Equal(t, reviews.Languages[ix%len(reviews.Languages)], review.Language, "should cycle languages")
		assert.True(t, review.Verified, "review should be verified")
		assert.True(t, review.Approved, "review should be approved")
		assert.NotEmpty(t, review.Comment)
		assert.NotEmpty(t, review.UserName)
		assert.NotEmpty(t, review.Location)
		assert.False(t, review.CreatedAt.After(now), "review can't be created in the future")
		assert.False(t, review.CreatedAt.Before(now.Add(-reviews.Window-time.Second)), "review should be inside window")
	}

	languages := lo.Uniq(lo.Map(result, func(r models.Review, _ int) string { return r.Language }))
	assert.ElementsMatch(t, reviews.Languages, languages, "should use exactly the supported languages")
}

func TestUnitGenerateDeterministicCycling(t *testing.T) {
	first := reviews.NewSynthesizer(reviews.WithClock(fakeClock{now: &now})).Generate(1, 50)
	second := reviews.NewSynthesizer(reviews.WithClock(fakeClock{now: &now})).Generate(1, 50)

	strip := func(r models.Review, _ int) [4]string {
		return [4]string{r.Language, r.Comment, r.UserName, r.Location}
	}
	assert.Equal(t, lo.Map(first, strip), lo.Map(second, strip), "cycled fields should be deterministic")
}

func TestUnitGenerateRatingAndTime(t *testing.T) {
	tests := map[string]struct {
		random     float64
		wantRating int
		wantTime   time.Time
	}{
		"lowest draw": {
			random:     0,
			wantRating: 4,
			wantTime:   now.Add(-reviews.Window),
		},
		"four star boundary": {
			random:     0.08,
			wantRating: 4,
			wantTime:   now.Add(-reviews.Window).Add(time.Duration(0.08 * float64(reviews.Window))).Truncate(time.Second),
		},
		"five stars": {
			random:     0.5,
			wantRating: 5,
			wantTime:   now.Add(-reviews.Window / 2),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			syn := reviews.NewSynthesizer(
				reviews.WithClock(fakeClock{now: &now}),
				reviews.WithRandom(func() float64 { return tt.random }),
			)

			result := syn.Generate(1, 1)

			require.Len(t, result, 1)
			assert.Equal(t, tt.wantRating, result[0].Rating)
			assert.Equal(t, tt.wantTime, result[0].CreatedAt)
		})
	}
}

func TestUnitGenerateRatingShare(t *testing.T) {
	result := reviews.NewSynthesizer().Generate(1, 20000)

	fives := lo.CountBy(result, func(r models.Review) bool { return r.Rating == 5 })
	assert.InDelta(t, 0.92, float64(fives)/float64(len(result)), 0.02, "about 92% of reviews should have 5 stars")
}

func TestUnitGenerateNothing(t *testing.T) {
	assert.Empty(t, reviews.NewSynthesizer().Generate(1, 0))
	assert.Empty(t, reviews.NewSynthesizer().Generate(1, -5))
}

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}
