package models

import "time"

// Movie is one catalog entry. Every movie belongs to exactly one user;
// rows are only ever read or written through the owner's id.
type Movie struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	PublishingYear int       `gorm:"not null" json:"publishingYear"`
	Poster         *string   `gorm:"type:text" json:"poster"`
	UserID         uint      `gorm:"index;not null" json:"userId"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Movie) TableName() string { return "movies" }
