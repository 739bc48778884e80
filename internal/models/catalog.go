package models

import "time"

// Category is a top-level classification for titles (book, film, music).
// Titles reference it optionally; deleting a category detaches titles
// rather than removing them.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Slug      string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// Genre is a tag attached to titles through a many-to-many link table.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Slug      string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Title represents a work users can review.
//
// Rating is never stored: it is the arithmetic mean of review scores,
// computed by an aggregate subquery on every read. A title without
// reviews serializes rating as JSON null, which is distinct from 0.
type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null;index" json:"name"`
	Year        int       `gorm:"not null;index" json:"year"`
	Description string    `gorm:"type:text" json:"description"`
	Genres      []Genre   `gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE" json:"genre"`
	CategoryID  *uint     `gorm:"index" json:"-"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category"`
	// Rating is computed at query time, not persisted.
	Rating    *float64  `gorm:"->;-:migration" json:"rating"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Reviews []Review `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
}
