package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               string              `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name             string              `gorm:"size:255;not null"`
	Description      string              `gorm:"type:text"`
	Price            decimal.Decimal     `gorm:"type:decimal(16,2);not null"`
	PromotionPrice   decimal.NullDecimal `gorm:"type:decimal(16,2)"`
	Materials        string              `gorm:"size:255"`
	SizeInfo         string              `gorm:"size:255"`
	CareInstructions string              `gorm:"type:text"`
	IsAvailable      bool                `gorm:"not null;index"`
	IsFeatured       bool                `gorm:"not null;index"`
	Images           []string            `gorm:"type:text;serializer:json"`
	Categories       []Category          `gorm:"many2many:product_categories;"`
	CreatedAt        time.Time           `gorm:"index"`
	UpdatedAt        time.Time
}

// ProductCategory is the join row between a product and a category.
type ProductCategory struct {
	ProductID  string `gorm:"size:36;primaryKey"`
	CategoryID string `gorm:"size:36;primaryKey"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return
}

// HasPromotion reports whether a promotion price above zero is set.
func (p Product) HasPromotion() bool {
	return p.PromotionPrice.Valid && p.PromotionPrice.Decimal.IsPositive()
}

// EffectivePrice is the price shown to customers.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.HasPromotion() {
		return p.PromotionPrice.Decimal
	}
	return p.Price
}

// PrimaryImage returns the image at position 0, or "" when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
