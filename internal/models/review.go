package models

import "time"

// Review is a scored write-up of a title. A user may review each title
// at most once; the composite unique index is the enforcement point so
// concurrent submissions cannot race past an application-level check.
type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Score    int    `gorm:"not null" json:"score"`
	AuthorID uint   `gorm:"not null;uniqueIndex:idx_reviews_author_title" json:"-"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	TitleID  uint   `gorm:"not null;index;uniqueIndex:idx_reviews_author_title" json:"title_id"`
	Title    *Title `gorm:"foreignKey:TitleID" json:"-"`
	// PubDate is set once at creation and never updated.
	PubDate time.Time `gorm:"column:pub_date;autoCreateTime" json:"pub_date"`

	Comments []Comment `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is a follow-up on a review. Unlike reviews there is no
// per-author uniqueness constraint.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	AuthorID uint      `gorm:"not null;index" json:"-"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	ReviewID uint      `gorm:"not null;index" json:"review_id"`
	Review   *Review   `gorm:"foreignKey:ReviewID" json:"-"`
	PubDate  time.Time `gorm:"column:pub_date;autoCreateTime" json:"pub_date"`
}
