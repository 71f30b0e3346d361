package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section is one titled block of a chapter. Content is either a string or a
// list of content blocks and is kept as the gateway returned it.
type Section struct {
	Title   string      `json:"t" bson:"t"`
	Content interface{} `json:"c" bson:"c"`
}

// Chapter is one part of a generated course.
type Chapter struct {
	Name        string    `json:"n" bson:"n"`
	Description string    `json:"d" bson:"d"`
	Sections    []Section `json:"s" bson:"s"`
}

// Course is a generated course stored in MongoDB.
type Course struct {
	ID          primitive.ObjectID `json:"id"                    bson:"_id,omitempty"`
	UserID      string             `json:"user_id"               bson:"user_id"`
	Title       string             `json:"title"                 bson:"title"`
	Description string             `json:"description"           bson:"description"`
	Language    string             `json:"language"              bson:"language"`
	Chapters    []Chapter          `json:"chapters"              bson:"chapters"`
	Topic       string             `json:"topic"                 bson:"topic"`
	ArchiveKey  string             `json:"archive_key,omitempty" bson:"archive_key,omitempty"`
	CreatedAt   time.Time          `json:"created_at"            bson:"created_at"`
}

// CourseForm is the body of POST /generate_course.
type CourseForm struct {
	Topic string `form:"topic" validate:"required,min=3,max=200"`
}
