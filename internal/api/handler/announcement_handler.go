package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/project-portal/internal/core/ports"
)

// AnnouncementHandler handles the announcement board.
type AnnouncementHandler struct {
	service ports.AnnouncementService
}

func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type createAnnouncementRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"  validate:"required"`
}

// List handles GET /announcements, newest first.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Success      200  {array}   domain.Announcement
// @Failure      401  {object}  errorResponse
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /announcements (faculty).
//
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        body  body      createAnnouncementRequest  true  "Announcement"
// @Success      201   {object}  domain.Announcement
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), user.ID, req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /announcements/:id (faculty).
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Param        id  path  string  true  "Announcement id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Announcement deleted"})
}
