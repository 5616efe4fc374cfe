package decoder

import (
	"strings"

	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/samber/lo"
)

// Accepted header spellings per logical field, in priority order.
var (
	NameColumns        = []string{"product name", "name", "产品名称", "名称"}
	DescriptionColumns = []string{"description (chinese)", "description", "描述", "产品描述"}
	PriceColumns       = []string{"sale price", "price", "售价", "价格"}
	ImageColumns       = []string{"image files", "images", "图片文件", "图片"}
	ExternalIDColumns  = []string{"sku", "external id", "external_id", "货号"}
)

// ResolveRow maps sheet row cells into logical product fields.
// For every field the first non-empty synonymous column wins. Missing fields stay empty.
func ResolveRow(headers []string, row models.SheetRow) models.ImportRow {
	positions := make(map[string]int, len(headers))
	for ix, header := range headers {
		if _, ok := positions[header]; !ok {
			positions[header] = ix
		}
	}

	value := func(synonyms []string) string {
		for _, synonym := range synonyms {
			ix, ok := positions[synonym]
			if !ok || ix >= len(row.Cells) {
				continue
			}
			if cell := strings.TrimSpace(row.Cells[ix]); cell != "" {
				return cell
			}
		}
		return ""
	}

	return models.ImportRow{
		Line:        row.Line,
		Name:        value(NameColumns),
		Description: value(DescriptionColumns),
		Price:       value(PriceColumns),
		ImageFiles:  value(ImageColumns),
		ExternalID:  value(ExternalIDColumns),
	}
}

// HasExternalID reports whether headers contain external identifier column.
func HasExternalID(headers []string) bool {
	return lo.Some(headers, ExternalIDColumns)
}
