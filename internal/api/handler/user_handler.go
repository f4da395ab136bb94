package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/project-portal/internal/core/ports"
)

// UserHandler handles the student directory and profile updates.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	StudentID *string `json:"student_id"`
}

// SearchStudents handles GET /users/search?query=.
//
// @Summary      Search students by name or student ID
// @Tags         users
// @Produce      json
// @Param        query  query     string  true  "Substring to match"
// @Success      200    {array}   domain.User
// @Failure      400    {object}  errorResponse
// @Router       /users/search [get]
func (h *UserHandler) SearchStudents(c echo.Context) error {
	students, err := h.service.SearchStudents(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

// UpdateProfile handles PUT /users/me.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:    user.ID,
		Role:      user.Role,
		Name:      req.Name,
		Email:     req.Email,
		StudentID: req.StudentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
