package modelstesting

import (
	"math/rand"
	"strings"

	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeImportRow returns models.ImportRow with fake data.
func FakeImportRow(ops ...func(r *models.ImportRow)) models.ImportRow {
	row := models.ImportRow{
		Line:        rand.Intn(1000) + 2,
		Name:        faker.Sentence(),
		Description: faker.Paragraph(),
		Price:       faker.AmountWithCurrency(),
		ImageFiles:  strings.Join([]string{faker.Word() + ".jpg", faker.Word() + ".png"}, ","),
	}

	for _, op := range ops {
		op(&row)
	}

	return row
}

// FakeProduct returns models.Product with fake data.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	salePrice := rand.Intn(500) + 1
	product := models.Product{
		Name:           faker.Sentence(),
		Slug:           faker.Username(),
		Description:    lo.ToPtr(faker.Paragraph()),
		SalePrice:      salePrice,
		RegularPrice:   (salePrice*13 + 9) / 10,
		CategoryID:     rand.Intn(100000) + 1,
		Status:         models.ProductPublished,
		Stock:          999,
		BlessingTemple: lo.ToPtr(faker.Word()),
		BlessingMaster: lo.ToPtr(faker.Word()),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeImage returns models.Image with fake name and random bytes.
func FakeImage(ops ...func(i *models.Image)) models.Image {
	data := make([]byte, rand.Intn(64)+16)
	_, _ = rand.Read(data)

	image := models.Image{
		Name: faker.Word() + ".jpg",
		Data: data,
	}

	for _, op := range ops {
		op(&image)
	}

	return image
}

// FakeReview returns models.Review with fake data.
func FakeReview(ops ...func(r *models.Review)) models.Review {
	review := models.Review{
		ProductID: rand.Intn(1000) + 1,
		UserName:  faker.Name(),
		Rating:    5,
		Comment:   faker.Sentence(),
		Location:  faker.Word(),
		Language:  "en",
		Verified:  true,
		Approved:  true,
	}

	for _, op := range ops {
		op(&review)
	}

	return review
}
