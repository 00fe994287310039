package domain

import "time"

// FeedbackStatus tracks whether an administrator has answered.
type FeedbackStatus string

const (
	FeedbackStatusPending   FeedbackStatus = "pending"
	FeedbackStatusResponded FeedbackStatus = "responded"
)

// Feedback is a citizen comment on a news article.
type Feedback struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	NewsID      string         `bson:"news_id" json:"newsId"`
	UserID      string         `bson:"user_id" json:"userId"`
	Message     string         `bson:"message" json:"message"`
	Status      FeedbackStatus `bson:"status" json:"status"`
	Response    string         `bson:"response,omitempty" json:"response,omitempty"`
	RespondedBy string         `bson:"responded_by,omitempty" json:"respondedBy,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updatedAt"`
}
