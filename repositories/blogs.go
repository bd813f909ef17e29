package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bloglist/db"
	"bloglist/models"
)

type BlogRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewBlogRepository(d *mongo.Database) *BlogRepository {
	return &BlogRepository{
		col:   d.Collection(db.BlogsCollection),
		users: d.Collection(db.UsersCollection),
	}
}

// ownerProjection limits an expanded user to username and name.
var ownerProjection = bson.M{"_id": 0, "username": 1, "name": 1}

// FindAll returns every blog with its user expanded, in natural order.
func (r *BlogRepository) FindAll(ctx context.Context) ([]models.PopulatedBlog, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         db.UsersCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"title":         1,
			"author":        1,
			"url":           1,
			"likes":         1,
			"dislikes":      1,
			"user.username": 1,
			"user.name":     1,
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []models.PopulatedBlog{}
	for cur.Next(ctx) {
		var b models.PopulatedBlog
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindByID returns a blog without expanding its user.
func (r *BlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Insert validates and stores a new blog, setting b.ID.
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) error {
	if err := models.Validate(b); err != nil {
		return err
	}
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

// UpdateByID validates u, applies it and returns the updated blog.
// An empty update returns the stored blog unchanged.
func (r *BlogRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, u models.BlogUpdate) (*models.Blog, error) {
	if err := models.Validate(u); err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{}
	if u.Likes != nil {
		set["likes"] = *u.Likes
	}
	if u.Dislikes != nil {
		set["dislikes"] = *u.Dislikes
	}

	var b models.Blog
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BlogRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Populate expands the user reference of b.
func (r *BlogRepository) Populate(ctx context.Context, b *models.Blog) (*models.PopulatedBlog, error) {
	var owner models.BlogOwner
	opts := options.FindOne().SetProjection(ownerProjection)
	err := r.users.FindOne(ctx, bson.M{"_id": b.User}, opts).Decode(&owner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		p := models.NewPopulatedBlog(*b, nil)
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	p := models.NewPopulatedBlog(*b, &owner)
	return &p, nil
}
