package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloglist/cmd/api/dto"
	"bloglist/cmd/api/services"
)

// CreateUserHandler godoc
// @Summary      Register user
// @Tags         users
// @Accept       json
// @Param        body  body  dto.CreateUserRequest  true  "User"
// @Produce      json
// @Success      201  {object}  dto.UserDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /users [post]
func CreateUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "malformatted request body"})
			return
		}

		user, err := svc.Register(c.Request.Context(), services.RegisterInput{
			Username: req.Username,
			Name:     req.Name,
			Password: req.Password,
		})
		if services.IsInvalidUserInput(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// ListUsersHandler godoc
// @Summary      List users
// @Description  List users with their blogs expanded
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.PopulatedUserDTO
// @Router       /users [get]
func ListUsersHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Exchange username and password for a bearer token
// @Tags         login
// @Accept       json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Produce      json
// @Success      200  {object}  dto.LoginResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /login [post]
func LoginHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "malformatted request body"})
			return
		}

		resp, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
