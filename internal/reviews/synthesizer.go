package reviews

import (
	"math/rand"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
)

const (
	// Window is the period before generation time in which review timestamps are spread.
	Window = 8 * 30 * 24 * time.Hour
	// fourStarShare is probability of a 4 star rating, all other reviews get 5 stars.
	fourStarShare = 0.08
)

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option is custom configuration of Synthesizer.
type Option func(s *Synthesizer)

// Synthesizer generates placeholder reviews from fixed templates.
// Generated reviews are verified and approved, so they bypass moderation and must never be produced
// without explicit operator consent.
type Synthesizer struct {
	clock  Clock
	random func() float64
}

// NewSynthesizer returns new Synthesizer.
func NewSynthesizer(ops ...Option) *Synthesizer {
	s := &Synthesizer{
		clock:  platform.SystemClock{},
		random: rand.Float64,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Generate returns exactly count reviews of product. Language, comment, reviewer name and location
// are cycled by index; rating and timestamp are random.
func (s *Synthesizer) Generate(productID int, count int) []models.Review {
	if count <= 0 {
		return nil
	}

	now := *s.clock.Now()
	windowStart := now.Add(-Window)
	reviews := make([]models.Review, 0, count)

	for ix := range count {
		language := Languages[ix%len(Languages)]
		comments := templates[language]

		rating := 5
		if s.random() <= fourStarShare {
			rating = 4
		}

		reviews = append(reviews, models.Review{
			ProductID: productID,
			UserName:  reviewerNames[ix%len(reviewerNames)],
			Rating:    rating,
			Comment:   comments[ix%len(comments)],
			Location:  locations[ix%len(locations)],
			Language:  language,
			Verified:  true,
			Approved:  true,
			CreatedAt: windowStart.Add(time.Duration(s.random() * float64(Window))).Truncate(time.Second),
		})
	}

	return reviews
}

// WithClock sets Synthesizer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Synthesizer) {
		s.clock = c
	}
}

// WithRandom sets source of random numbers in [0, 1).
func WithRandom(random func() float64) Option {
	return func(s *Synthesizer) {
		s.random = random
	}
}
