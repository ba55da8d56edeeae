package models

// Category is read-only reference data describing a catalog section.
type Category struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null;uniqueIndex"`
	ImageURL string `gorm:"column:image_url;not null"`
}
