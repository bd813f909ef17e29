package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloglist/cmd/api/auth"
	"bloglist/cmd/api/dto"
	"bloglist/cmd/api/metrics"
	"bloglist/cmd/api/middleware"
	"bloglist/cmd/api/services"
	"bloglist/repositories"
)

// ListBlogsHandler godoc
// @Summary      List blogs
// @Description  List every blog with its user expanded to username and name
// @Tags         blogs
// @Produce      json
// @Success      200  {array}  dto.PopulatedBlogDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs [get]
func ListBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := svc.List(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, blogs)
	}
}

// GetBlogHandler godoc
// @Summary      Get blog by id
// @Description  Get a single blog; the user field is the owner id
// @Tags         blogs
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.BlogDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {string}  string  "empty body"
// @Router       /blogs/{id} [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, blog)
	}
}

// CreateBlogHandler godoc
// @Summary      Create blog
// @Description  Create a blog owned by the authenticated user; likes and dislikes default to 0
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        body  body  dto.CreateBlogRequest  true  "Blog"
// @Produce      json
// @Success      201  {object}  dto.PopulatedBlogDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /blogs [post]
func CreateBlogHandler(svc *services.BlogService, m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			auth.AbortWithUnauthorized(c, auth.ErrMissingHeader)
			return
		}

		var req dto.CreateBlogRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "malformatted request body"})
			return
		}

		blog, err := svc.Create(c.Request.Context(), user, services.CreateBlogInput{
			Title:    req.Title,
			Author:   req.Author,
			URL:      req.URL,
			Likes:    req.Likes,
			Dislikes: req.Dislikes,
		})
		if errors.Is(err, services.ErrMissingBlogFields) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if err != nil {
			c.Error(err)
			return
		}
		m.CounterBlogsCreated.Inc()
		c.JSON(http.StatusCreated, blog)
	}
}

// UpdateLikesHandler godoc
// @Summary      Replace likes
// @Description  Replace the likes counter of a blog
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string                  true  "ObjectID"
// @Param        body  body  dto.UpdateLikesRequest  true  "Likes"
// @Produce      json
// @Success      200  {object}  dto.PopulatedBlogDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/likes [put]
func UpdateLikesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateLikesRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "Server error"})
			return
		}
		blog, err := svc.UpdateLikes(c.Request.Context(), c.Param("id"), req.Likes)
		writeCounterUpdate(c, blog, err)
	}
}

// UpdateDislikesHandler godoc
// @Summary      Replace dislikes
// @Description  Replace the dislikes counter of a blog
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string                     true  "ObjectID"
// @Param        body  body  dto.UpdateDislikesRequest  true  "Dislikes"
// @Produce      json
// @Success      200  {object}  dto.PopulatedBlogDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/dislikes [put]
func UpdateDislikesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateDislikesRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "Server error"})
			return
		}
		blog, err := svc.UpdateDislikes(c.Request.Context(), c.Param("id"), req.Dislikes)
		writeCounterUpdate(c, blog, err)
	}
}

// bindOptionalJSON decodes the body into v, treating an empty body as {}.
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// counter updates answer every failure themselves instead of forwarding it
func writeCounterUpdate(c *gin.Context, blog dto.PopulatedBlogDTO, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "Blog not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "Server error"})
		return
	}
	c.JSON(http.StatusOK, blog)
}

// DeleteBlogHandler godoc
// @Summary      Delete blog
// @Description  Delete a blog; only its creator may do so
// @Tags         blogs
// @Security     BearerAuth
// @Param        id   path   string  true  "ObjectID"
// @Success      204  {string}  string  "no content"
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [delete]
func DeleteBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			auth.AbortWithUnauthorized(c, auth.ErrMissingHeader)
			return
		}

		err := svc.Delete(c.Request.Context(), user, c.Param("id"))
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: err.Error()})
		case err != nil:
			c.Error(err)
		default:
			c.Status(http.StatusNoContent)
		}
	}
}
