package handler

import (
	"errors"
	"net/http"

	"jobtrackr/api/middleware"
	"jobtrackr/internal/dto"
	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	errUnknownStatus = errors.New("unknown status")
	errUnknownPlan   = errors.New("unknown plan")
)

type LearningHandler struct {
	Learning repository.LearningRepository
	Validate *validator.Validate
}

func NewLearningHandler(learning repository.LearningRepository, validate *validator.Validate) *LearningHandler {
	return &LearningHandler{Learning: learning, Validate: validate}
}

func (h *LearningHandler) ListStatuses(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	statuses, err := h.Learning.ListStatuses(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	responses := make([]dto.LearningStatusResponse, 0, len(statuses))
	for i := range statuses {
		responses = append(responses, dto.LearningStatusResponseFromEntity(&statuses[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *LearningHandler) CreateStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.LearningStatusRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status := &entity.LearningStatus{
		UserID:   p.UserID,
		Name:     req.Name,
		Category: entity.LearningStatusCategory(req.Category),
		Color:    req.Color,
	}
	if err := h.Learning.CreateStatus(c.Request().Context(), status); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.LearningStatusResponseFromEntity(status))
}

func (h *LearningHandler) GetStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Learning.FindStatus(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if status == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.LearningStatusResponseFromEntity(status))
}

func (h *LearningHandler) UpdateStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.LearningStatusRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Learning.FindStatus(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if status == nil {
		return writeNotFound(c)
	}
	status.Name = req.Name
	status.Category = entity.LearningStatusCategory(req.Category)
	status.Color = req.Color
	if err := h.Learning.UpdateStatus(c.Request().Context(), status); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LearningStatusResponseFromEntity(status))
}

func (h *LearningHandler) DeleteStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Learning.FindStatus(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if status == nil {
		return writeNotFound(c)
	}
	if err := h.Learning.DeleteStatus(c.Request().Context(), status.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LearningHandler) ListPlans(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	plans, err := h.Learning.ListPlans(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LearningPlanResponsesFromEntities(plans))
}

func (h *LearningHandler) CreatePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.LearningPlanRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	statusID, err := h.ownedStatusID(c, p, req.StatusID)
	if err != nil {
		return err
	}

	plan := &entity.LearningPlan{UserID: p.UserID}
	applyPlanRequest(plan, req, statusID)
	if err := h.Learning.CreatePlan(c.Request().Context(), plan); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.LearningPlanResponseFromEntity(plan))
}

func (h *LearningHandler) GetPlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	plan, err := h.Learning.FindPlan(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if plan == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.LearningPlanResponseFromEntity(plan))
}

func (h *LearningHandler) UpdatePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.LearningPlanRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	plan, err := h.Learning.FindPlan(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if plan == nil {
		return writeNotFound(c)
	}
	statusID, err := h.ownedStatusID(c, p, req.StatusID)
	if err != nil {
		return err
	}

	applyPlanRequest(plan, req, statusID)
	plan.Status = nil
	if err := h.Learning.UpdatePlan(c.Request().Context(), plan); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LearningPlanResponseFromEntity(plan))
}

func (h *LearningHandler) DeletePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	plan, err := h.Learning.FindPlan(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if plan == nil {
		return writeNotFound(c)
	}
	if err := h.Learning.DeletePlan(c.Request().Context(), plan.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LearningHandler) ListResources(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	resources, err := h.Learning.ListResources(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LearningResourceResponsesFromEntities(resources))
}

func (h *LearningHandler) CreateResource(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.LearningResourceRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	planID, err := h.ownedPlanID(c, p, req.PlanID)
	if err != nil {
		return err
	}
	statusID, err := h.ownedStatusID(c, p, req.StatusID)
	if err != nil {
		return err
	}

	resource := &entity.LearningResource{}
	applyResourceRequest(resource, req, planID, statusID)
	if err := h.Learning.CreateResource(c.Request().Context(), resource); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.LearningResourceResponseFromEntity(resource))
}

func (h *LearningHandler) GetResource(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	resource, err := h.Learning.FindResource(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if resource == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.LearningResourceResponseFromEntity(resource))
}

func (h *LearningHandler) UpdateResource(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.LearningResourceRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	resource, err := h.Learning.FindResource(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if resource == nil {
		return writeNotFound(c)
	}
	planID, err := h.ownedPlanID(c, p, req.PlanID)
	if err != nil {
		return err
	}
	statusID, err := h.ownedStatusID(c, p, req.StatusID)
	if err != nil {
		return err
	}

	applyResourceRequest(resource, req, planID, statusID)
	resource.Status = nil
	resource.Plan = nil
	if err := h.Learning.UpdateResource(c.Request().Context(), resource); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LearningResourceResponseFromEntity(resource))
}

func (h *LearningHandler) DeleteResource(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	resource, err := h.Learning.FindResource(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if resource == nil {
		return writeNotFound(c)
	}
	if err := h.Learning.DeleteResource(c.Request().Context(), resource.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LearningHandler) Board(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	statuses, err := h.Learning.Board(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.KanbanBoardFromEntities(statuses))
}

// ownedStatusID resolves a status id string and confirms the status belongs
// to the caller. Returns a written response error if not.
func (h *LearningHandler) ownedStatusID(c echo.Context, p middleware.Principal, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Learning.FindStatus(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return uuid.Nil, writeServiceError(c, err)
	}
	if status == nil {
		return uuid.Nil, writeError(c, http.StatusBadRequest, errUnknownStatus)
	}
	return id, nil
}

func (h *LearningHandler) ownedPlanID(c echo.Context, p middleware.Principal, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, writeError(c, http.StatusBadRequest, err)
	}
	plan, err := h.Learning.FindPlan(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return uuid.Nil, writeServiceError(c, err)
	}
	if plan == nil {
		return uuid.Nil, writeError(c, http.StatusBadRequest, errUnknownPlan)
	}
	return id, nil
}

func applyPlanRequest(plan *entity.LearningPlan, req dto.LearningPlanRequest, statusID uuid.UUID) {
	plan.Name = req.Name
	plan.Description = req.Description
	plan.ExpectedStartedDate = dto.TimeFromDate(req.ExpectedStartedDate)
	plan.ExpectedCompletedDate = dto.TimeFromDate(req.ExpectedCompletedDate)
	plan.ActualStartedDate = dto.TimeFromDate(req.ActualStartedDate)
	plan.ActualCompletedDate = dto.TimeFromDate(req.ActualCompletedDate)
	plan.StatusID = statusID
	plan.CompletedPercentage = req.CompletedPercentage
}

func applyResourceRequest(resource *entity.LearningResource, req dto.LearningResourceRequest, planID, statusID uuid.UUID) {
	resource.Name = req.Name
	resource.ResourceType = entity.ResourceType(req.ResourceType)
	resource.ResourceURL = req.ResourceURL
	resource.PlanID = planID
	resource.StatusID = statusID
	resource.ExpectedStartedDate = dto.TimeFromDate(req.ExpectedStartedDate)
	resource.ExpectedCompletedDate = dto.TimeFromDate(req.ExpectedCompletedDate)
	resource.ActualStartedDate = dto.TimeFromDate(req.ActualStartedDate)
	resource.ActualCompletedDate = dto.TimeFromDate(req.ActualCompletedDate)
	resource.Description = req.Description
	resource.CompletedPercentage = req.CompletedPercentage
}
