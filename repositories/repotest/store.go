// Package repotest provides in-memory blog and user stores for tests.
package repotest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bloglist/models"
	"bloglist/repositories"
)

// DB holds the documents shared by a BlogRepo and a UserRepo.
// Err, when set, is returned by every store call.
type DB struct {
	mutex     sync.Mutex
	blogs     []models.Blog
	users     []models.User
	Err       error
	BlogErr   error
	AppendErr error
}

func NewDB() *DB {
	return &DB{}
}

// Blogs returns a copy of the stored blogs.
func (d *DB) Blogs() []models.Blog {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]models.Blog(nil), d.blogs...)
}

// User returns a copy of the stored user with the given id.
func (d *DB) User(id primitive.ObjectID) (models.User, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if i := d.userIndex(id); i >= 0 {
		u := d.users[i]
		u.Blogs = append([]primitive.ObjectID(nil), u.Blogs...)
		return u, true
	}
	return models.User{}, false
}

// AddUser stores u directly, assigning an id when missing.
func (d *DB) AddUser(u models.User) models.User {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}
	d.users = append(d.users, u)
	return u
}

// AddBlog stores b directly, assigning an id when missing.
func (d *DB) AddBlog(b models.Blog) models.Blog {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	d.blogs = append(d.blogs, b)
	return b
}

func (d *DB) blogIndex(id primitive.ObjectID) int {
	for i := range d.blogs {
		if d.blogs[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *DB) userIndex(id primitive.ObjectID) int {
	for i := range d.users {
		if d.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *DB) owner(id primitive.ObjectID) *models.BlogOwner {
	if i := d.userIndex(id); i >= 0 {
		return &models.BlogOwner{Username: d.users[i].Username, Name: d.users[i].Name}
	}
	return nil
}

type BlogRepo struct {
	db *DB
}

func NewBlogRepo(d *DB) *BlogRepo {
	return &BlogRepo{db: d}
}

func (r *BlogRepo) FindAll(_ context.Context) ([]models.PopulatedBlog, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	out := make([]models.PopulatedBlog, 0, len(r.db.blogs))
	for _, b := range r.db.blogs {
		out = append(out, models.NewPopulatedBlog(b, r.db.owner(b.User)))
	}
	return out, nil
}

func (r *BlogRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	i := r.db.blogIndex(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	b := r.db.blogs[i]
	return &b, nil
}

func (r *BlogRepo) Insert(_ context.Context, b *models.Blog) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}
	if r.db.BlogErr != nil {
		return r.db.BlogErr
	}
	if err := models.Validate(b); err != nil {
		return err
	}
	b.ID = primitive.NewObjectID()
	r.db.blogs = append(r.db.blogs, *b)
	return nil
}

func (r *BlogRepo) UpdateByID(_ context.Context, id primitive.ObjectID, u models.BlogUpdate) (*models.Blog, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	if err := models.Validate(u); err != nil {
		return nil, err
	}
	i := r.db.blogIndex(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	applyUpdate(&r.db.blogs[i], u)
	b := r.db.blogs[i]
	return &b, nil
}

func (r *BlogRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}
	i := r.db.blogIndex(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.db.blogs = append(r.db.blogs[:i], r.db.blogs[i+1:]...)
	return nil
}

func (r *BlogRepo) Populate(_ context.Context, b *models.Blog) (*models.PopulatedBlog, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	p := models.NewPopulatedBlog(*b, r.db.owner(b.User))
	return &p, nil
}

// applyUpdate copies the set counters of u onto b, like the $set the mongo repository sends.
func applyUpdate(b *models.Blog, u models.BlogUpdate) {
	if u.Likes != nil {
		b.Likes = *u.Likes
	}
	if u.Dislikes != nil {
		b.Dislikes = *u.Dislikes
	}
}

type UserRepo struct {
	db *DB
}

func NewUserRepo(d *DB) *UserRepo {
	return &UserRepo{db: d}
}

func (r *UserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	i := r.db.userIndex(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	u := r.db.users[i]
	return &u, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepo) Insert(_ context.Context, u *models.User) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}
	if err := models.Validate(u); err != nil {
		return err
	}
	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	u.ID = primitive.NewObjectID()
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}
	r.db.users = append(r.db.users, *u)
	return nil
}

func (r *UserRepo) AppendBlog(_ context.Context, userID, blogID primitive.ObjectID) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}
	if r.db.AppendErr != nil {
		return r.db.AppendErr
	}
	i := r.db.userIndex(userID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.db.users[i].Blogs = append(r.db.users[i].Blogs, blogID)
	return nil
}

func (r *UserRepo) FindAll(_ context.Context) ([]models.PopulatedUser, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}
	out := make([]models.PopulatedUser, 0, len(r.db.users))
	for _, u := range r.db.users {
		pu := models.PopulatedUser{ID: u.ID, Username: u.Username, Name: u.Name, Blogs: []models.UserBlog{}}
		for _, id := range u.Blogs {
			if i := r.db.blogIndex(id); i >= 0 {
				b := r.db.blogs[i]
				pu.Blogs = append(pu.Blogs, models.UserBlog{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes})
			}
		}
		out = append(out, pu)
	}
	return out, nil
}
