package domain

// Location is immutable reference data describing a physical storage place.
type Location struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null"`
}

func (Location) TableName() string { return "locations" }
