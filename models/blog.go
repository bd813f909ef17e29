package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post bookmarked by a user
// Collection: blogs
type Blog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title" validate:"required"`
	Author   string             `bson:"author,omitempty" json:"author,omitempty"`
	URL      string             `bson:"url" json:"url" validate:"required"`
	Likes    int                `bson:"likes" json:"likes" validate:"gte=0"`
	Dislikes int                `bson:"dislikes" json:"dislikes" validate:"gte=0"`
	User     primitive.ObjectID `bson:"user" json:"user" validate:"required"`
}

// BlogOwner is the subset of a user inlined into a populated blog.
type BlogOwner struct {
	Username string `bson:"username" json:"username"`
	Name     string `bson:"name" json:"name"`
}

// PopulatedBlog is a Blog whose user reference was expanded.
// User is nil when the referenced user no longer exists.
type PopulatedBlog struct {
	ID       primitive.ObjectID `bson:"_id"`
	Title    string             `bson:"title"`
	Author   string             `bson:"author,omitempty"`
	URL      string             `bson:"url"`
	Likes    int                `bson:"likes"`
	Dislikes int                `bson:"dislikes"`
	User     *BlogOwner         `bson:"user,omitempty"`
}

func NewPopulatedBlog(b Blog, owner *BlogOwner) PopulatedBlog {
	return PopulatedBlog{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		Dislikes: b.Dislikes,
		User:     owner,
	}
}

// BlogUpdate carries the counters a PUT may replace. Nil fields are left unchanged.
type BlogUpdate struct {
	Likes    *int `validate:"omitempty,gte=0"`
	Dislikes *int `validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update changes nothing.
func (u BlogUpdate) IsEmpty() bool {
	return u.Likes == nil && u.Dislikes == nil
}
