package models

// FavoriteCharacter is a row of the favorite_characters join table.
// The (UserID, CharacterID) pair is the row's only identity.
type FavoriteCharacter struct {
	UserID      uint `gorm:"primaryKey"`
	CharacterID uint `gorm:"primaryKey"`
}

func (FavoriteCharacter) TableName() string {
	return "favorite_characters"
}

// FavoriteLocation is a row of the favorite_locations join table.
type FavoriteLocation struct {
	UserID     uint `gorm:"primaryKey"`
	LocationID uint `gorm:"primaryKey"`
}

func (FavoriteLocation) TableName() string {
	return "favorite_locations"
}

// String returns a pointer to s, or nil when s is empty. Handy for filling
// the optional catalog columns.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// nullable unwraps optional columns so an unset value serializes as null.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
