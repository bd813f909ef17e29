package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bloglist/cmd/api/dto"
	"bloglist/models"
	"bloglist/repositories"
	"bloglist/repositories/repotest"
)

func intPtr(v int) *int { return &v }

func newBlogServiceWithDB(t *testing.T) (*BlogService, *repotest.DB, models.User) {
	t.Helper()
	d := repotest.NewDB()
	owner := d.AddUser(models.User{Username: "root", Name: "Superuser"})
	return NewBlogService(repotest.NewBlogRepo(d), repotest.NewUserRepo(d)), d, owner
}

func TestBlogServiceListExpandsOwner(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	other := d.AddUser(models.User{Username: "mluukkai", Name: "Matti Luukkainen"})
	d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID})
	d.AddBlog(models.Blog{Title: "B", URL: "https://b", User: other.ID, Likes: 5})

	blogs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, blogs, 2)

	assert.Equal(t, &dto.BlogOwnerDTO{Username: "root", Name: "Superuser"}, blogs[0].User)
	assert.Equal(t, &dto.BlogOwnerDTO{Username: "mluukkai", Name: "Matti Luukkainen"}, blogs[1].User)
	assert.Equal(t, 5, blogs[1].Likes)
}

func TestBlogServiceListEmpty(t *testing.T) {
	svc, _, _ := newBlogServiceWithDB(t)

	blogs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)
}

func TestBlogServiceGetByID(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID})

	got, err := svc.GetByID(context.Background(), stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), got.ID)
	assert.Equal(t, owner.ID.Hex(), got.User)

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "123")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
}

func TestBlogServiceCreateDefaultsCounters(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	created, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "T", URL: "U"})
	require.NoError(t, err)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Dislikes)
	assert.Equal(t, &dto.BlogOwnerDTO{Username: "root", Name: "Superuser"}, created.User)

	blogs := d.Blogs()
	require.Len(t, blogs, 1)
	assert.Equal(t, 0, blogs[0].Likes)
	assert.Equal(t, 0, blogs[0].Dislikes)
	assert.Equal(t, owner.ID, blogs[0].User)

	stored, ok := d.User(owner.ID)
	require.True(t, ok)
	assert.Equal(t, []primitive.ObjectID{blogs[0].ID}, stored.Blogs)
	assert.Equal(t, created.ID, blogs[0].ID.Hex())
}

func TestBlogServiceCreateKeepsGivenCounters(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	created, err := svc.Create(context.Background(), &owner, CreateBlogInput{
		Title: "T", Author: "A", URL: "U", Likes: intPtr(4), Dislikes: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.Likes)
	assert.Equal(t, 2, created.Dislikes)
	assert.Equal(t, "A", created.Author)
	assert.Len(t, d.Blogs(), 1)
}

func TestBlogServiceCreateAppendsInOrder(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	first, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "1", URL: "U"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "2", URL: "U"})
	require.NoError(t, err)

	stored, _ := d.User(owner.ID)
	require.Len(t, stored.Blogs, 2)
	assert.Equal(t, first.ID, stored.Blogs[0].Hex())
	assert.Equal(t, second.ID, stored.Blogs[1].Hex())
}

func TestBlogServiceCreateRequiresTitleAndURL(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	for name, in := range map[string]CreateBlogInput{
		"missing title": {URL: "U"},
		"missing url":   {Title: "T"},
		"missing both":  {Author: "A"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &owner, in)
			assert.ErrorIs(t, err, ErrMissingBlogFields)
		})
	}
	assert.Empty(t, d.Blogs())
}

func TestBlogServiceCreateRejectsNegativeCounters(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	_, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "T", URL: "U", Likes: intPtr(-1)})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Empty(t, d.Blogs())
}

func TestBlogServiceCreateLeavesBlogWhenUserWriteFails(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	d.AppendErr = errors.New("write conflict")

	_, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "T", URL: "U"})
	require.Error(t, err)
	assert.ErrorIs(t, err, d.AppendErr)

	// the two writes are independent: the blog stays, the user list does not grow
	assert.Len(t, d.Blogs(), 1)
	stored, _ := d.User(owner.ID)
	assert.Empty(t, stored.Blogs)
}

func TestBlogServiceUpdateLikes(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID, Likes: 1, Dislikes: 1})

	updated, err := svc.UpdateLikes(context.Background(), stored.ID.Hex(), intPtr(9))
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Likes)
	assert.Equal(t, 1, updated.Dislikes)
	assert.Equal(t, &dto.BlogOwnerDTO{Username: "root", Name: "Superuser"}, updated.User)

	updated, err = svc.UpdateDislikes(context.Background(), stored.ID.Hex(), intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Likes)
	assert.Equal(t, 3, updated.Dislikes)
}

func TestBlogServiceUpdateLikesWithoutValueKeepsBlog(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID, Likes: 2})

	updated, err := svc.UpdateLikes(context.Background(), stored.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Likes)
}

func TestBlogServiceUpdateLikesMissingBlog(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID, Likes: 2})

	_, err := svc.UpdateLikes(context.Background(), primitive.NewObjectID().Hex(), intPtr(10))
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	blogs := d.Blogs()
	require.Len(t, blogs, 1)
	assert.Equal(t, stored, blogs[0])
}

func TestBlogServiceUpdateLikesRejectsNegative(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID, Likes: 2})

	_, err := svc.UpdateLikes(context.Background(), stored.ID.Hex(), intPtr(-5))
	require.Error(t, err)
	assert.Equal(t, 2, d.Blogs()[0].Likes)
}

func TestBlogServiceDelete(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	stranger := d.AddUser(models.User{Username: "hellas", Name: "Arto Hellas"})
	stored := d.AddBlog(models.Blog{Title: "A", URL: "https://a", User: owner.ID})

	err := svc.Delete(context.Background(), &stranger, stored.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, d.Blogs(), 1)

	require.NoError(t, svc.Delete(context.Background(), &owner, stored.ID.Hex()))
	assert.Empty(t, d.Blogs())

	_, err = svc.GetByID(context.Background(), stored.ID.Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = svc.Delete(context.Background(), &owner, stored.ID.Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBlogServiceDeleteKeepsUserBlogList(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)

	created, err := svc.Create(context.Background(), &owner, CreateBlogInput{Title: "T", URL: "U"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), &owner, created.ID))

	stored, _ := d.User(owner.ID)
	require.Len(t, stored.Blogs, 1)
	assert.Equal(t, created.ID, stored.Blogs[0].Hex())
}

func TestBlogServicePropagatesStoreErrors(t *testing.T) {
	svc, d, owner := newBlogServiceWithDB(t)
	d.Err = errors.New("connection reset")

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, d.Err)

	_, err = svc.Create(context.Background(), &owner, CreateBlogInput{Title: "T", URL: "U"})
	assert.ErrorIs(t, err, d.Err)

	err = svc.Delete(context.Background(), &owner, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, d.Err)
}
