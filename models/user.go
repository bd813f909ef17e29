package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User owns blogs and authenticates with a password
// Collection: users
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username" validate:"required,min=3"`
	Name         string               `bson:"name" json:"name"`
	PasswordHash string               `bson:"password_hash" json:"-"`
	Blogs        []primitive.ObjectID `bson:"blogs" json:"blogs"`
}

// UserBlog is the subset of a blog inlined into a populated user.
type UserBlog struct {
	ID     primitive.ObjectID `bson:"_id"`
	Title  string             `bson:"title"`
	Author string             `bson:"author,omitempty"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
}

// PopulatedUser is a User whose blog references were expanded.
type PopulatedUser struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Name     string             `bson:"name"`
	Blogs    []UserBlog         `bson:"blogs"`
}
