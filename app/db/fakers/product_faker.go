package fakers

import (
	"math/rand"
	"strings"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

const placeholderImage = "/static/main-image.jpg"

var productKinds = []string{"Gấu", "Thỏ", "Mèo", "Cá heo", "Hoa", "Nấm", "Khủng long"}

var materials = []string{"Len cotton sữa", "Len milk cotton", "Len acrylic", "Len nhung"}

// ProductFaker builds an unsaved product linked to one or two of the given
// categories. The chosen category IDs are returned alongside.
func ProductFaker(categories []models.Category) (*models.Product, []string) {
	name := productKinds[rand.Intn(len(productKinds))] + " " + strings.Title(faker.Word())

	price := decimal.NewFromInt(int64(rand.Intn(40)+5) * 10000)
	product := &models.Product{
		Name:             name,
		Description:      faker.Paragraph(),
		Price:            price,
		Materials:        materials[rand.Intn(len(materials))],
		SizeInfo:         faker.Sentence(),
		CareInstructions: "Giặt tay nhẹ nhàng, phơi nơi thoáng mát.",
		IsAvailable:      rand.Intn(10) > 0,
		IsFeatured:       rand.Intn(4) == 0,
		Images:           []string{placeholderImage},
	}
	if rand.Intn(3) == 0 {
		promo := price.Mul(decimal.NewFromFloat(0.8)).Round(-3)
		product.PromotionPrice = decimal.NewNullDecimal(promo)
	}

	var categoryIDs []string
	if len(categories) > 0 {
		perm := rand.Perm(len(categories))
		for _, i := range perm[:rand.Intn(min(2, len(categories)))+1] {
			categoryIDs = append(categoryIDs, categories[i].ID)
		}
	}
	return product, categoryIDs
}
