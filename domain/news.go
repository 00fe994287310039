package domain

import "time"

// NewsCategory groups articles on the portal front page.
type NewsCategory string

const (
	NewsCategoryAnnouncement NewsCategory = "announcement"
	NewsCategoryEvent        NewsCategory = "event"
	NewsCategoryProject      NewsCategory = "project"
	NewsCategoryGeneral      NewsCategory = "general"
)

// News is a published article on the portal.
type News struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	Title     string       `bson:"title" json:"title"`
	Body      string       `bson:"body" json:"body"`
	Category  NewsCategory `bson:"category" json:"category"`
	ImageURL  string       `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	AuthorID  string       `bson:"author_id" json:"authorId"`
	Published bool         `bson:"published" json:"published"`
	Views     int64        `bson:"views" json:"views"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updatedAt"`
}
