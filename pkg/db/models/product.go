package models

import (
	"time"

	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
)

// Product represents a second-hand listing in the catalog.
type Product struct {
	ID                 int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	Title              string                 `gorm:"column:title;not null"`
	Description        string                 `gorm:"column:description;not null"`
	Category           string                 `gorm:"column:category;not null"`
	Condition          enums.ProductCondition `gorm:"column:condition;not null"`
	Price              float64                `gorm:"column:price;not null"`
	OriginalPrice      float64                `gorm:"column:original_price;not null"`
	DiscountPercentage int                    `gorm:"column:discount_percentage;not null"`
	Location           string                 `gorm:"column:location;not null"`
	IsVerified         bool                   `gorm:"column:is_verified;not null;default:false"`
	IsNewWithTags      bool                   `gorm:"column:is_new_with_tags;not null;default:false"`
	ImageURL           string                 `gorm:"column:image_url;not null"`
	SellerID           int64                  `gorm:"column:seller_id;not null"`
	CreatedAt          time.Time              `gorm:"column:created_at;autoCreateTime"`
}
