package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bloglist/db"
	"bloglist/models"
)

// newTestDatabase starts a throwaway mongo container. The test is skipped when docker is unavailable.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not create dockertest pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("could not ping docker: %s", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))
	var client *mongo.Client
	err = pool.Retry(func() error {
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		return client.Ping(ctx, nil)
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	database := client.Database("bloglist_test")
	require.NoError(t, db.EnsureIndexes(ctx, database))
	return database
}

func intPtr(v int) *int { return &v }

func TestMongoRepositories(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	users := NewUserRepository(database)
	blogs := NewBlogRepository(database)

	root := &models.User{Username: "root", Name: "Superuser", PasswordHash: "x"}
	require.NoError(t, users.Insert(ctx, root))
	require.False(t, root.ID.IsZero())

	t.Run("duplicate username", func(t *testing.T) {
		err := users.Insert(ctx, &models.User{Username: "root", Name: "Other"})
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	blog := &models.Blog{Title: "Go at scale", URL: "https://go.dev/blog", User: root.ID}
	require.NoError(t, blogs.Insert(ctx, blog))
	require.False(t, blog.ID.IsZero())
	require.NoError(t, users.AppendBlog(ctx, root.ID, blog.ID))

	t.Run("find all expands owner", func(t *testing.T) {
		all, err := blogs.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.NotNil(t, all[0].User)
		assert.Equal(t, models.BlogOwner{Username: "root", Name: "Superuser"}, *all[0].User)
		assert.Equal(t, 0, all[0].Likes)
	})

	t.Run("user blog list", func(t *testing.T) {
		u, err := users.FindByID(ctx, root.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{blog.ID}, u.Blogs)

		populated, err := users.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, populated, 1)
		require.Len(t, populated[0].Blogs, 1)
		assert.Equal(t, "Go at scale", populated[0].Blogs[0].Title)
	})

	t.Run("update likes", func(t *testing.T) {
		updated, err := blogs.UpdateByID(ctx, blog.ID, models.BlogUpdate{Likes: intPtr(7)})
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Likes)
		assert.Equal(t, 0, updated.Dislikes)

		_, err = blogs.UpdateByID(ctx, primitive.NewObjectID(), models.BlogUpdate{Likes: intPtr(1)})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = blogs.UpdateByID(ctx, blog.ID, models.BlogUpdate{Likes: intPtr(-1)})
		assert.Error(t, err)
	})

	t.Run("populate", func(t *testing.T) {
		p, err := blogs.Populate(ctx, blog)
		require.NoError(t, err)
		require.NotNil(t, p.User)
		assert.Equal(t, "root", p.User.Username)
	})

	t.Run("find all keeps insertion order", func(t *testing.T) {
		var ids []primitive.ObjectID
		for i := 0; i < 5; i++ {
			b := &models.Blog{Title: gofakeit.Name(), Author: gofakeit.Name(), URL: gofakeit.URL(), Likes: i, User: root.ID}
			require.NoError(t, blogs.Insert(ctx, b))
			ids = append(ids, b.ID)
		}

		all, err := blogs.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 6)
		for i, id := range ids {
			assert.Equal(t, id, all[i+1].ID)
			assert.Equal(t, i, all[i+1].Likes)
		}

		for _, id := range ids {
			require.NoError(t, blogs.DeleteByID(ctx, id))
		}
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, blogs.DeleteByID(ctx, blog.ID))
		_, err := blogs.FindByID(ctx, blog.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, blogs.DeleteByID(ctx, blog.ID), ErrNotFound)
	})

	t.Run("user blogs follow append order", func(t *testing.T) {
		writer := &models.User{Username: "writer", Name: "Writer"}
		require.NoError(t, users.Insert(ctx, writer))

		var inserted []*models.Blog
		for _, title := range []string{"one", "two", "three"} {
			b := &models.Blog{Title: title, URL: gofakeit.URL(), User: writer.ID}
			require.NoError(t, blogs.Insert(ctx, b))
			inserted = append(inserted, b)
		}
		for _, i := range []int{2, 0, 1} {
			require.NoError(t, users.AppendBlog(ctx, writer.ID, inserted[i].ID))
		}

		all, err := users.FindAll(ctx)
		require.NoError(t, err)
		var got []string
		for _, u := range all {
			if u.Username == "writer" {
				for _, b := range u.Blogs {
					got = append(got, b.Title)
				}
			}
		}
		assert.Equal(t, []string{"three", "one", "two"}, got)
	})
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	parsed, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}
