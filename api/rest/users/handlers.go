package users

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/algorave/errorhandler/api/rest/pagination"
	"codeberg.org/algorave/errorhandler/errorhandler/users"
	"codeberg.org/algorave/errorhandler/internal/errors"
	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary Register a user
// @Description Creates a user; invalid fields, malformed JSON and duplicate emails are rejected with 400
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.CreateRequest true "User data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /api/v1/users [post]
// @Security BearerAuth
func CreateUser(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateRequest
		if !errors.BindJSON(c, &req) {
			return
		}

		user, err := repo.Create(c.Request.Context(), req)
		if err != nil {
			if stderrors.Is(err, users.ErrDuplicateEmail) {
				errors.Respond(c, errors.Validation("email "+req.Email+" is already registered"))
				return
			}

			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, toResponse(user))
	}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /api/v1/users [get]
func ListUsers(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params pagination.Params
		if !errors.BindQuery(c, &params) {
			return
		}

		params = params.WithDefaults()

		list, total, err := repo.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		out := make([]UserResponse, 0, len(list))
		for i := range list {
			out = append(out, toResponse(&list[i]))
		}

		c.JSON(http.StatusOK, ListResponse{
			Users:      out,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /api/v1/users/{id} [get]
func GetUser(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := errors.ValidatePathUUID(c, "id", "user")
		if !ok {
			return
		}

		user, err := repo.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(user))
	}
}

// SearchUser godoc
// @Summary Find a user by email
// @Tags users
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /api/v1/users/search [get]
func SearchUser(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := errors.RequireQuery(c, "email")
		if !ok {
			return
		}

		user, err := repo.FindByEmail(c.Request.Context(), email)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(user))
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Admin only
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 401 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /api/v1/users/{id} [delete]
// @Security BearerAuth
func DeleteUser(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := errors.ValidatePathUUID(c, "id", "user")
		if !ok {
			return
		}

		if err := repo.Delete(c.Request.Context(), userID); err != nil {
			errors.Respond(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func toResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}
