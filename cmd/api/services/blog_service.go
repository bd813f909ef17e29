package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/cmd/api/dto"
	"bloglist/models"
	"bloglist/repositories"
)

var (
	ErrMissingBlogFields = errors.New("title and url are required")
	ErrForbidden         = errors.New("only the creator can delete the blog")
)

// BlogService implements the blog collection operations over a BlogStore and a UserStore.
//
// Create writes the blog and then the owner's blog list as two independent writes;
// a failure on the second leaves the blog out of the owner's list.
type BlogService struct {
	blogs BlogStore
	users UserStore
}

func NewBlogService(blogs BlogStore, users UserStore) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

type CreateBlogInput struct {
	Title    string
	Author   string
	URL      string
	Likes    *int
	Dislikes *int
}

// List returns every blog with its owner expanded to username and name.
func (s *BlogService) List(ctx context.Context) ([]dto.PopulatedBlogDTO, error) {
	items, err := s.blogs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PopulatedBlogDTO, 0, len(items))
	for _, b := range items {
		out = append(out, dto.NewPopulatedBlogDTO(b))
	}
	return out, nil
}

// GetByID returns a blog with the owner left as an id.
func (s *BlogService) GetByID(ctx context.Context, idStr string) (dto.BlogDTO, error) {
	id, err := repositories.ParseID(idStr)
	if err != nil {
		return dto.BlogDTO{}, err
	}
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return dto.BlogDTO{}, err
	}
	return dto.NewBlogDTO(*b), nil
}

// Create stores a blog owned by user and appends it to the user's blog list.
func (s *BlogService) Create(ctx context.Context, user *models.User, in CreateBlogInput) (dto.PopulatedBlogDTO, error) {
	if in.Title == "" || in.URL == "" {
		return dto.PopulatedBlogDTO{}, ErrMissingBlogFields
	}

	b := &models.Blog{
		Title:    in.Title,
		Author:   in.Author,
		URL:      in.URL,
		Likes:    valueOrZero(in.Likes),
		Dislikes: valueOrZero(in.Dislikes),
		User:     user.ID,
	}
	if err := s.blogs.Insert(ctx, b); err != nil {
		return dto.PopulatedBlogDTO{}, fmt.Errorf("insert blog: %w", err)
	}
	if err := s.users.AppendBlog(ctx, user.ID, b.ID); err != nil {
		return dto.PopulatedBlogDTO{}, fmt.Errorf("append blog %s to user %s: %w", b.ID.Hex(), user.ID.Hex(), err)
	}
	user.Blogs = append(user.Blogs, b.ID)

	populated, err := s.blogs.Populate(ctx, b)
	if err != nil {
		return dto.PopulatedBlogDTO{}, fmt.Errorf("populate blog: %w", err)
	}
	return dto.NewPopulatedBlogDTO(*populated), nil
}

// UpdateLikes replaces the likes counter. A nil value leaves the blog unchanged.
func (s *BlogService) UpdateLikes(ctx context.Context, idStr string, likes *int) (dto.PopulatedBlogDTO, error) {
	return s.update(ctx, idStr, models.BlogUpdate{Likes: likes})
}

// UpdateDislikes replaces the dislikes counter. A nil value leaves the blog unchanged.
func (s *BlogService) UpdateDislikes(ctx context.Context, idStr string, dislikes *int) (dto.PopulatedBlogDTO, error) {
	return s.update(ctx, idStr, models.BlogUpdate{Dislikes: dislikes})
}

func (s *BlogService) update(ctx context.Context, idStr string, u models.BlogUpdate) (dto.PopulatedBlogDTO, error) {
	id, err := repositories.ParseID(idStr)
	if err != nil {
		return dto.PopulatedBlogDTO{}, err
	}
	b, err := s.blogs.UpdateByID(ctx, id, u)
	if err != nil {
		return dto.PopulatedBlogDTO{}, err
	}
	populated, err := s.blogs.Populate(ctx, b)
	if err != nil {
		return dto.PopulatedBlogDTO{}, fmt.Errorf("populate blog: %w", err)
	}
	return dto.NewPopulatedBlogDTO(*populated), nil
}

// Delete removes a blog owned by user. Non-owners get ErrForbidden.
func (s *BlogService) Delete(ctx context.Context, user *models.User, idStr string) error {
	id, err := repositories.ParseID(idStr)
	if err != nil {
		return err
	}
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.User != user.ID {
		return ErrForbidden
	}
	return s.blogs.DeleteByID(ctx, id)
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
