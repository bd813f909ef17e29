package repositories

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bloglist/db"
	"bloglist/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(d *mongo.Database) *UserRepository {
	return &UserRepository{col: d.Collection(db.UsersCollection)}
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Insert validates and stores a new user, setting u.ID.
// A username collision on the unique index yields ErrDuplicateUsername.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	if err := models.Validate(u); err != nil {
		return err
	}
	// $push on the blogs field fails against a null value
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// AppendBlog pushes blogID onto the end of the user's blog list.
func (r *UserRepository) AppendBlog(ctx context.Context, userID, blogID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"blogs": blogID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// populatedUserDoc carries the user's blog ids next to the looked-up blogs,
// since $lookup returns matches in collection order.
type populatedUserDoc struct {
	models.PopulatedUser `bson:",inline"`
	BlogOrder            []primitive.ObjectID `bson:"blog_order"`
}

// FindAll returns every user with their blogs expanded in the order they were appended.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.PopulatedUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{"blog_order": "$blogs"}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         db.BlogsCollection,
			"localField":   "blogs",
			"foreignField": "_id",
			"as":           "blogs",
		}}},
		{{Key: "$project", Value: bson.M{
			"username":     1,
			"name":         1,
			"blog_order":   1,
			"blogs._id":    1,
			"blogs.title":  1,
			"blogs.author": 1,
			"blogs.url":    1,
			"blogs.likes":  1,
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []populatedUserDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	results := make([]models.PopulatedUser, 0, len(docs))
	for _, d := range docs {
		u := d.PopulatedUser
		u.Blogs = orderUserBlogs(u.Blogs, d.BlogOrder)
		results = append(results, u)
	}
	return results, nil
}

// orderUserBlogs sorts blogs by the position of their id in order.
// Blogs whose id is not in order keep their relative order at the end.
func orderUserBlogs(blogs []models.UserBlog, order []primitive.ObjectID) []models.UserBlog {
	if blogs == nil {
		return []models.UserBlog{}
	}
	pos := make(map[primitive.ObjectID]int, len(order))
	for i, id := range order {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	rank := func(b models.UserBlog) int {
		if p, ok := pos[b.ID]; ok {
			return p
		}
		return len(order)
	}
	slices.SortStableFunc(blogs, func(a, b models.UserBlog) int {
		return rank(a) - rank(b)
	})
	return blogs
}
