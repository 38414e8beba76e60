package models

// DefaultIsActive is applied when a User is created without an explicit
// is_active value.
const DefaultIsActive = true

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"size:120;uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"` // Never serialized
	IsActive *bool  `gorm:"not null;default:true"`

	// Many-to-Many relationships, owned by User only
	FavoriteCharacters []Character `gorm:"many2many:favorite_characters;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	FavoriteLocations  []Location  `gorm:"many2many:favorite_locations;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Active reports the user's is_active flag, falling back to the column
// default for records that were never written.
func (u *User) Active() bool {
	if u.IsActive == nil {
		return DefaultIsActive
	}
	return *u.IsActive
}

// Serialize returns the public view of the user. The password is never included.
func (u *User) Serialize() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"is_active": u.Active(),
	}
}

// SerializeWithFavorites extends Serialize with the loaded favorite sets.
// Callers must preload FavoriteCharacters and FavoriteLocations first.
func (u *User) SerializeWithFavorites() map[string]any {
	out := u.Serialize()

	characters := make([]any, 0, len(u.FavoriteCharacters))
	for i := range u.FavoriteCharacters {
		characters = append(characters, u.FavoriteCharacters[i].Serialize())
	}
	locations := make([]any, 0, len(u.FavoriteLocations))
	for i := range u.FavoriteLocations {
		locations = append(locations, u.FavoriteLocations[i].Serialize())
	}

	out["favorite_characters"] = characters
	out["favorite_locations"] = locations
	return out
}
