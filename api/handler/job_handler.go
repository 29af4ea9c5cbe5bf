package handler

import (
	"net/http"

	"jobtrackr/internal/dto"
	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	Jobs     repository.JobRepository
	Validate *validator.Validate
}

func NewJobHandler(jobs repository.JobRepository, validate *validator.Validate) *JobHandler {
	return &JobHandler{Jobs: jobs, Validate: validate}
}

func (h *JobHandler) ListStatuses(c echo.Context) error {
	statuses, err := h.Jobs.ListStatuses(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	responses := make([]dto.JobStatusResponse, 0, len(statuses))
	for i := range statuses {
		responses = append(responses, dto.JobStatusResponseFromEntity(&statuses[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *JobHandler) CreateStatus(c echo.Context) error {
	var req dto.JobStatusRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status := &entity.JobApplicationStatus{
		Name:     req.Name,
		Category: entity.JobStatusCategory(req.Category),
		Color:    req.Color,
	}
	if err := h.Jobs.CreateStatus(c.Request().Context(), status); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.JobStatusResponseFromEntity(status))
}

func (h *JobHandler) GetStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Jobs.FindStatus(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if status == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.JobStatusResponseFromEntity(status))
}

func (h *JobHandler) UpdateStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.JobStatusRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Jobs.FindStatus(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if status == nil {
		return writeNotFound(c)
	}
	status.Name = req.Name
	status.Category = entity.JobStatusCategory(req.Category)
	status.Color = req.Color
	if err := h.Jobs.UpdateStatus(c.Request().Context(), status); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobStatusResponseFromEntity(status))
}

func (h *JobHandler) DeleteStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Jobs.DeleteStatus(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JobHandler) ListSkills(c echo.Context) error {
	skills, err := h.Jobs.ListSkills(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobSkillResponsesFromEntities(skills))
}

func (h *JobHandler) CreateSkill(c echo.Context) error {
	var req dto.JobSkillRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skill := &entity.JobSkill{Name: req.Name}
	if err := h.Jobs.CreateSkill(c.Request().Context(), skill); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.JobSkillResponseFromEntity(skill))
}

func (h *JobHandler) GetSkill(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skill, err := h.Jobs.FindSkill(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if skill == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.JobSkillResponseFromEntity(skill))
}

func (h *JobHandler) UpdateSkill(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.JobSkillRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skill, err := h.Jobs.FindSkill(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if skill == nil {
		return writeNotFound(c)
	}
	skill.Name = req.Name
	if err := h.Jobs.UpdateSkill(c.Request().Context(), skill); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobSkillResponseFromEntity(skill))
}

func (h *JobHandler) DeleteSkill(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Jobs.DeleteSkill(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JobHandler) ListApplications(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	apps, err := h.Jobs.ListApplications(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobApplicationResponsesFromEntities(apps))
}

func (h *JobHandler) CreateApplication(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.JobApplicationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	app := &entity.JobApplication{UserID: p.UserID}
	if err := h.applyApplicationRequest(c, app, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Jobs.CreateApplication(c.Request().Context(), app); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.JobApplicationResponseFromEntity(app))
}

func (h *JobHandler) GetApplication(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	app, err := h.Jobs.FindApplication(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if app == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.JobApplicationResponseFromEntity(app))
}

func (h *JobHandler) UpdateApplication(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.JobApplicationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	app, err := h.Jobs.FindApplication(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if app == nil {
		return writeNotFound(c)
	}
	if err := h.applyApplicationRequest(c, app, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Jobs.UpdateApplication(c.Request().Context(), app); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobApplicationResponseFromEntity(app))
}

func (h *JobHandler) DeleteApplication(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	app, err := h.Jobs.FindApplication(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if app == nil {
		return writeNotFound(c)
	}
	if err := h.Jobs.DeleteApplication(c.Request().Context(), app.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JobHandler) applyApplicationRequest(c echo.Context, app *entity.JobApplication, req dto.JobApplicationRequest) error {
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		return err
	}
	skillIDs, err := parseUUIDs(req.SkillIDs)
	if err != nil {
		return err
	}
	preferredIDs, err := parseUUIDs(req.PreferredSkillIDs)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	skills, err := h.Jobs.FindSkills(ctx, skillIDs)
	if err != nil {
		return err
	}
	preferred, err := h.Jobs.FindSkills(ctx, preferredIDs)
	if err != nil {
		return err
	}

	app.Position = req.Position
	app.CompanyName = req.CompanyName
	app.Location = req.Location
	app.AppliedDate = dto.TimeFromDate(req.AppliedDate)
	app.JobPostedDate = dto.TimeFromDate(req.JobPostedDate)
	app.JobClosedDate = dto.TimeFromDate(req.JobClosedDate)
	app.StatusID = statusID
	app.Status = nil
	app.Skills = skills
	app.PreferredSkills = preferred
	app.Description = req.Description
	app.RequiredExperience = req.RequiredExperience
	app.ContactMail = req.ContactMail
	app.ApplicationThrough = entity.ApplicationThrough(req.ApplicationThrough)
	app.ApplicationURL = req.ApplicationURL
	return nil
}

func (h *JobHandler) ListUserSkills(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	skills, err := h.Jobs.ListUserSkills(c.Request().Context(), requestScope(p))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserSkillResponsesFromEntities(skills))
}

func (h *JobHandler) CreateUserSkill(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UserSkillRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	skill := &entity.UserSkill{
		UserID:     p.UserID,
		SkillID:    skillID,
		Level:      entity.SkillLevel(req.Level),
		Confidence: req.Confidence,
	}
	if err := h.Jobs.CreateUserSkill(c.Request().Context(), skill); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserSkillResponseFromEntity(skill))
}

func (h *JobHandler) GetUserSkill(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skill, err := h.Jobs.FindUserSkill(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if skill == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.UserSkillResponseFromEntity(skill))
}

func (h *JobHandler) UpdateUserSkill(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.UserSkillRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	skill, err := h.Jobs.FindUserSkill(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if skill == nil {
		return writeNotFound(c)
	}
	skill.SkillID = skillID
	skill.Skill = nil
	skill.Level = entity.SkillLevel(req.Level)
	skill.Confidence = req.Confidence
	if err := h.Jobs.UpdateUserSkill(c.Request().Context(), skill); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserSkillResponseFromEntity(skill))
}

func (h *JobHandler) DeleteUserSkill(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	skill, err := h.Jobs.FindUserSkill(c.Request().Context(), requestScope(p), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if skill == nil {
		return writeNotFound(c)
	}
	if err := h.Jobs.DeleteUserSkill(c.Request().Context(), skill.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
