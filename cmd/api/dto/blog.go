package dto

import (
	"bloglist/models"
)

// BlogDTO is a blog whose user is the bare owner id.
type BlogDTO struct {
	ID       string `json:"id" example:"64b7f0c2a1b2c3d4e5f60718"`
	Title    string `json:"title" example:"Go Concurrency Patterns"`
	Author   string `json:"author,omitempty" example:"Rob Pike"`
	URL      string `json:"url" example:"https://go.dev/talks/2012/concurrency.slide"`
	Likes    int    `json:"likes" example:"3"`
	Dislikes int    `json:"dislikes" example:"0"`
	User     string `json:"user" example:"64b7f0c2a1b2c3d4e5f60719"`
}

// BlogOwnerDTO is the expanded user of a populated blog.
type BlogOwnerDTO struct {
	Username string `json:"username" example:"root"`
	Name     string `json:"name" example:"Superuser"`
}

// PopulatedBlogDTO is a blog whose user is expanded to username and name.
// User is null when the owner no longer exists.
type PopulatedBlogDTO struct {
	ID       string        `json:"id" example:"64b7f0c2a1b2c3d4e5f60718"`
	Title    string        `json:"title" example:"Go Concurrency Patterns"`
	Author   string        `json:"author,omitempty" example:"Rob Pike"`
	URL      string        `json:"url" example:"https://go.dev/talks/2012/concurrency.slide"`
	Likes    int           `json:"likes" example:"3"`
	Dislikes int           `json:"dislikes" example:"0"`
	User     *BlogOwnerDTO `json:"user"`
}

// CreateBlogRequest is the POST /blogs body. Counters default to 0 when absent.
type CreateBlogRequest struct {
	Title    string `json:"title" example:"Go Concurrency Patterns"`
	Author   string `json:"author" example:"Rob Pike"`
	URL      string `json:"url" example:"https://go.dev/talks/2012/concurrency.slide"`
	Likes    *int   `json:"likes" example:"0"`
	Dislikes *int   `json:"dislikes" example:"0"`
}

type UpdateLikesRequest struct {
	Likes *int `json:"likes" example:"4"`
}

type UpdateDislikesRequest struct {
	Dislikes *int `json:"dislikes" example:"1"`
}

func NewBlogDTO(b models.Blog) BlogDTO {
	return BlogDTO{
		ID:       b.ID.Hex(),
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		Dislikes: b.Dislikes,
		User:     b.User.Hex(),
	}
}

func NewPopulatedBlogDTO(b models.PopulatedBlog) PopulatedBlogDTO {
	out := PopulatedBlogDTO{
		ID:       b.ID.Hex(),
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		Dislikes: b.Dislikes,
	}
	if b.User != nil {
		out.User = &BlogOwnerDTO{Username: b.User.Username, Name: b.User.Name}
	}
	return out
}
