package models

// Tag is a free-form label attachable to many tasks.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
