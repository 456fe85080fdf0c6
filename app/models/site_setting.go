package models

import "time"

const (
	SettingHomeHeroImage        = "home_hero_image"
	SettingHomeCustomOrderImage = "home_custom_order_image"
)

// SiteImageSlots lists the setting keys that hold a single site image.
var SiteImageSlots = []string{SettingHomeHeroImage, SettingHomeCustomOrderImage}

type SiteSetting struct {
	Key       string  `gorm:"column:key;size:100;primaryKey"`
	Value     *string `gorm:"type:text"`
	UpdatedAt time.Time
}

func IsSiteImageSlot(key string) bool {
	for _, k := range SiteImageSlots {
		if k == key {
			return true
		}
	}
	return false
}
