package models

// Location is a catalog entry from the external media catalog.
type Location struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Type      *string `gorm:"size:50"`
	Dimension *string `gorm:"size:100"`
}

func (l *Location) Serialize() map[string]any {
	return map[string]any{
		"id":        l.ID,
		"name":      l.Name,
		"type":      nullable(l.Type),
		"dimension": nullable(l.Dimension),
	}
}
