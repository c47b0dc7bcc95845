package model

// Age is a fixed dog age category (puppy, adult, senior). The set is seeded
// at startup and read-only to clients.
type Age struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Value     string `json:"value" gorm:"size:20;not null"`
	SortOrder int    `json:"sortOrder" gorm:"column:sort_order;not null"`
}
