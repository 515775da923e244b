package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	DisplayName  string         `gorm:"size:100" json:"display_name,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type RefreshToken struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"index;size:36" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;size:64" json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

type Folder struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index;size:36" json:"user_id"`
	ParentFolderID *string   `gorm:"index;size:36" json:"parent_folder_id,omitempty"`
	Name           string    `gorm:"size:255" json:"name"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
}

type Deck struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:36" json:"user_id"`
	FolderID    *string   `gorm:"index;size:36" json:"folder_id,omitempty"`
	Title       string    `gorm:"index;size:255" json:"title"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	IsPublic    bool      `gorm:"default:false" json:"is_public"`
	Cards       []Card    `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
}

type Card struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DeckID    string    `gorm:"index;size:36" json:"deck_id"`
	Front     string    `gorm:"type:text" json:"front"`
	Back      string    `gorm:"type:text" json:"back"`
	Position  int       `gorm:"index" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Deck      Deck      `gorm:"foreignKey:DeckID" json:"-"`
}

func (User) TableName() string         { return "users" }
func (RefreshToken) TableName() string { return "refresh_tokens" }
func (Folder) TableName() string       { return "folders" }
func (Deck) TableName() string         { return "decks" }
func (Card) TableName() string         { return "cards" }

// BeforeCreate hooks assign UUID identities so imports can carry their own
// IDs (an import that supplies an ID keeps it; see insert-if-absent in the
// importer).

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
