package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultPrice is sale price used when raw price can't be parsed.
	DefaultPrice  = 45
	slugMaxLength = 80
	fallbackSlug  = "product"
)

var (
	nonPriceChars  = regexp.MustCompile(`[^0-9.]`)
	leadingNumber  = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// NormalizePrice strips everything except digits and decimal points from raw price,
// parses its leading number and rounds it up. DefaultPrice is returned when nothing can be parsed.
func NormalizePrice(raw string) int {
	number := leadingNumber.FindString(nonPriceChars.ReplaceAllString(raw, ""))
	if number == "" {
		return DefaultPrice
	}

	price, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(price, 0) || price > math.MaxInt32 {
		return DefaultPrice
	}

	return int(math.Ceil(price))
}

// RegularPrice returns pre-discount price shown next to sale price, ceil(salePrice * 1.3).
// It is a fabricated reference price, not a price the product was ever sold for.
func RegularPrice(salePrice int) int {
	return (salePrice*13 + 9) / 10
}

// Slug returns URL-safe slug of name, letters outside ASCII are dropped, with short base36 timestamp suffix.
func Slug(name string, now time.Time) string {
	base := strings.ToLower(name)
	base = nonSlugChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(base)
	base = slugWhitespace.ReplaceAllString(base, "-")
	base = slugHyphens.ReplaceAllString(base, "-")
	base = strings.Trim(truncate(base, slugMaxLength), "-")
	if base == "" {
		base = fallbackSlug
	}

	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}

	return base + "-" + suffix
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	return string([]rune(s)[:maxRunes])
}
