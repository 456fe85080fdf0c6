package fakers

import "github.com/ghecrochet/storefront/app/models"

var demoCategories = []models.Category{
	{Name: "Amigurumi", Description: "Thú bông móc len thủ công.", Icon: "🧸"},
	{Name: "Móc khóa", Description: "Móc khóa len nhỏ xinh.", Icon: "🔑"},
	{Name: "Phụ kiện", Description: "Kẹp tóc, túi và phụ kiện len.", Icon: "🎀"},
	{Name: "Lucky Box - Hộp Quà May Mắn", Description: "Hộp quà ngẫu nhiên.", Icon: "🎁"},
}

// CategoryFaker returns fresh copies of the demo categories.
func CategoryFaker() []models.Category {
	categories := make([]models.Category, len(demoCategories))
	copy(categories, demoCategories)
	return categories
}
