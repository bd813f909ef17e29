package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bloglist/models"
)

// BlogStore is the persistence the blog operations need.
// Implementations return repositories.ErrNotFound for unknown ids.
type BlogStore interface {
	FindAll(ctx context.Context) ([]models.PopulatedBlog, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	Insert(ctx context.Context, b *models.Blog) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, u models.BlogUpdate) (*models.Blog, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	Populate(ctx context.Context, b *models.Blog) (*models.PopulatedBlog, error)
}

type UserStore interface {
	FindAll(ctx context.Context) ([]models.PopulatedUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	AppendBlog(ctx context.Context, userID, blogID primitive.ObjectID) error
}
