package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/project-portal/internal/api/metrics"
	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// ProjectHandler handles HTTP requests for the project lifecycle.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Submit handles POST /projects.
//
// @Summary      Submit a new project idea
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      submitProjectRequest  true  "Project idea"
// @Success      201   {object}  domain.ProjectIdea
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Submit(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Submit(c.Request().Context(), toSubmitInput(req, user.ID))
	if err != nil {
		return err
	}

	metrics.ProjectsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, project)
}

// ListMine handles GET /projects.
//
// @Summary      List the caller's projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   domain.ProjectIdea
// @Failure      401  {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) ListMine(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// ListAll handles GET /projects/all (faculty).
//
// @Summary      List all projects with student info
// @Tags         projects
// @Produce      json
// @Success      200  {array}   ports.ProjectWithStudent
// @Failure      403  {object}  errorResponse
// @Router       /projects/all [get]
func (h *ProjectHandler) ListAll(c echo.Context) error {
	items, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListFinalMarks handles GET /projects/final-marks. Marks are visible to
// every authenticated user, not just faculty or the owner.
//
// @Summary      List all projects with marks
// @Tags         projects
// @Produce      json
// @Success      200  {array}   ports.ProjectWithStudent
// @Failure      401  {object}  errorResponse
// @Router       /projects/final-marks [get]
func (h *ProjectHandler) ListFinalMarks(c echo.Context) error {
	items, err := h.service.ListFinalMarks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /projects/:id (owner).
//
// @Summary      Update title, description, or features
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.ProjectIdea
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Update(c.Request().Context(), toUpdateInput(req, c.Param("id"), user.ID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:id (owner).
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Project deleted"})
}

// Approve handles PUT /projects/approve/:id (faculty). Approving keeps
// the project; rejecting deletes it permanently.
//
// @Summary      Approve or reject a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Project id"
// @Param        body  body      approveProjectRequest  true  "Decision"
// @Success      200   {object}  domain.ProjectIdea
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /projects/approve/{id} [put]
func (h *ProjectHandler) Approve(c echo.Context) error {
	var req approveProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Approve(c.Request().Context(), c.Param("id"), *req.Approved)
	if err != nil {
		return err
	}

	if result.Deleted {
		metrics.ProjectDecisionsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "Project rejected and deleted", Deleted: true})
	}
	metrics.ProjectDecisionsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, result.Project)
}

// AddFeedback handles PUT /projects/feedback/:id (faculty).
//
// @Summary      Set feedback and marks
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Project id"
// @Param        body  body      feedbackRequest  true  "Feedback and optional marks"
// @Success      200   {object}  domain.ProjectIdea
// @Failure      404   {object}  errorResponse
// @Router       /projects/feedback/{id} [put]
func (h *ProjectHandler) AddFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.AddFeedback(c.Request().Context(), ports.FeedbackInput{
		ProjectID: c.Param("id"),
		Feedback:  req.Feedback,
		Marks:     req.Marks,
	})
	if err != nil {
		return err
	}

	metrics.FeedbackAssignedTotal.Inc()
	return c.JSON(http.StatusOK, project)
}

// SubmitFinal handles PUT /projects/final: attaches the final link to the
// caller's approved project.
//
// @Summary      Submit the final project link
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      submitFinalRequest  true  "Final link"
// @Success      200   {object}  domain.ProjectIdea
// @Failure      404   {object}  errorResponse
// @Router       /projects/final [put]
func (h *ProjectHandler) SubmitFinal(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitFinalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.SubmitFinal(c.Request().Context(), user.ID, req.FinalLink)
	if err != nil {
		return err
	}

	metrics.FinalSubmissionsTotal.Inc()
	return c.JSON(http.StatusOK, project)
}

// ToggleFeature handles PUT /projects/:id/features/:index (owner).
//
// @Summary      Toggle one feature's completion flag
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id     path      string                true  "Project id"
// @Param        index  path      int                   true  "Feature index"
// @Param        body   body      toggleFeatureRequest  true  "Completion flag"
// @Success      200    {object}  domain.ProjectIdea
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /projects/{id}/features/{index} [put]
func (h *ProjectHandler) ToggleFeature(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return domain.ErrInvalidFeatureIndex
	}

	var req toggleFeatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.ToggleFeature(c.Request().Context(), c.Param("id"), user.ID, index, req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}
