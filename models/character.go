package models

// Character is a catalog entry from the external media catalog.
// Users that favorited a character are found through the
// favorite_characters join table, not through a back-reference.
type Character struct {
	ID      uint    `gorm:"primaryKey"`
	Name    string  `gorm:"size:100;not null"`
	Species *string `gorm:"size:50"`
	Status  *string `gorm:"size:20"`
	Gender  *string `gorm:"size:20"`
	Image   *string `gorm:"size:200"` // URL
}

func (c *Character) Serialize() map[string]any {
	return map[string]any{
		"id":      c.ID,
		"name":    c.Name,
		"species": nullable(c.Species),
		"status":  nullable(c.Status),
		"gender":  nullable(c.Gender),
		"image":   nullable(c.Image),
	}
}
