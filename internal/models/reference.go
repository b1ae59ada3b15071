package models

// Country is seeded reference data; rows are immutable at runtime.
type Country struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Code string `gorm:"size:3;uniqueIndex;not null" json:"code"`
}

// Category is seeded reference data; rows are immutable at runtime.
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// Tag is seeded reference data; rows are immutable at runtime.
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}
