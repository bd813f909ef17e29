package dto

import (
	"bloglist/models"
)

// UserDTO is a registered user with the ids of their blogs.
type UserDTO struct {
	ID       string   `json:"id" example:"64b7f0c2a1b2c3d4e5f60719"`
	Username string   `json:"username" example:"root"`
	Name     string   `json:"name" example:"Superuser"`
	Blogs    []string `json:"blogs"`
}

// UserBlogDTO is a blog inlined into a populated user.
type UserBlogDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// PopulatedUserDTO is a user whose blogs are expanded.
type PopulatedUserDTO struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []UserBlogDTO `json:"blogs"`
}

type CreateUserRequest struct {
	Username string `json:"username" example:"root"`
	Name     string `json:"name" example:"Superuser"`
	Password string `json:"password" example:"salainen"`
}

type LoginRequest struct {
	Username string `json:"username" example:"root"`
	Password string `json:"password" example:"salainen"`
}

type LoginResponseDTO struct {
	Token    string `json:"token"`
	Username string `json:"username" example:"root"`
	Name     string `json:"name" example:"Superuser"`
}

func NewUserDTO(u models.User) UserDTO {
	blogs := make([]string, 0, len(u.Blogs))
	for _, id := range u.Blogs {
		blogs = append(blogs, id.Hex())
	}
	return UserDTO{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Blogs:    blogs,
	}
}

func NewPopulatedUserDTO(u models.PopulatedUser) PopulatedUserDTO {
	blogs := make([]UserBlogDTO, 0, len(u.Blogs))
	for _, b := range u.Blogs {
		blogs = append(blogs, UserBlogDTO{
			ID:     b.ID.Hex(),
			Title:  b.Title,
			Author: b.Author,
			URL:    b.URL,
			Likes:  b.Likes,
		})
	}
	return PopulatedUserDTO{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Blogs:    blogs,
	}
}
