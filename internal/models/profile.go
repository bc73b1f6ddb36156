package models

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	Name string `json:"name"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Education struct {
	Institute string `json:"institute"`
	Year      string `json:"year"`
	Score     string `json:"score"`
}

// Profile is the portfolio document, owned 1:1 by a user.
type Profile struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`

	Bio        string `json:"bio"`
	Phone      string `json:"phone"`
	Github     string `json:"github"`
	Linkedin   string `json:"linkedin"`
	Degree     string `json:"degree"`
	Branch     string `json:"branch"`
	University string `json:"university"`
	CGPA       string `json:"cgpa"`
	Year       string `json:"year"`

	// Public URL of the uploaded profile image, nil until one is uploaded.
	ImageURL *string `json:"imageUrl"`
	// Storage-provider id of the image (public_id, fileId or object key).
	ImageFileID string `json:"-"`

	Skills      []Skill     `json:"skills" gorm:"serializer:json"`
	Projects    []Project   `json:"projects" gorm:"serializer:json"`
	Education10 []Education `json:"education10" gorm:"serializer:json"`
	Education12 []Education `json:"education12" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
