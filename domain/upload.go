package domain

import "time"

// Upload is the stored metadata of an uploaded file. Bytes live on disk; the
// document only records where and what.
type Upload struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FileName    string    `bson:"file_name" json:"fileName"`
	StoredPath  string    `bson:"stored_path" json:"-"`
	ContentType string    `bson:"content_type" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploaderID  string    `bson:"uploader_id" json:"uploaderId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
