package handler

import (
	"errors"
	"net/http"

	"jobtrackr/internal/dto"
	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Users    repository.UserRepository
	Hasher   service.PasswordHasher
	Validate *validator.Validate
}

func NewUserHandler(users repository.UserRepository, hasher service.PasswordHasher, validate *validator.Validate) *UserHandler {
	return &UserHandler{Users: users, Hasher: hasher, Validate: validate}
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Users.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.UserCreateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         entity.UserRoleUser,
		IsActive:     true,
		Profile:      &entity.Profile{},
		SocialLinks:  &entity.SocialLink{},
	}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if !p.IsAdmin() && p.UserID != id {
		return writeError(c, http.StatusForbidden, errors.New("you can only access your own profile"))
	}
	user, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if !p.IsAdmin() && p.UserID != id {
		return writeError(c, http.StatusForbidden, errors.New("you can only access your own profile"))
	}

	var req dto.UserUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	user, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return writeNotFound(c)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil && p.IsAdmin() {
		user.IsActive = *req.IsActive
	}
	if err := h.Users.Update(c.Request().Context(), user); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListProfiles(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	profiles, err := h.Users.ListProfiles(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, dto.ProfileResponseFromEntity(&profiles[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	user, err := h.Users.FindByID(c.Request().Context(), p.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil || user.Profile == nil {
		return writeNotFound(c)
	}

	profile := user.Profile
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.ProfilePictureURL != nil {
		profile.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.CoverPhotoURL != nil {
		profile.CoverPhotoURL = req.CoverPhotoURL
	}
	if req.ResumeURL != nil {
		profile.ResumeURL = req.ResumeURL
	}
	if err := h.Users.SaveProfile(c.Request().Context(), profile); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProfileResponseFromEntity(profile))
}

func (h *UserHandler) UpdateSocialLinks(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SocialLinkUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	user, err := h.Users.FindByID(c.Request().Context(), p.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil || user.SocialLinks == nil {
		return writeNotFound(c)
	}

	links := user.SocialLinks
	if req.LinkedIn != nil {
		links.LinkedIn = req.LinkedIn
	}
	if req.GitHub != nil {
		links.GitHub = req.GitHub
	}
	if req.Twitter != nil {
		links.Twitter = req.Twitter
	}
	if req.Facebook != nil {
		links.Facebook = req.Facebook
	}
	if req.Instagram != nil {
		links.Instagram = req.Instagram
	}
	if err := h.Users.SaveSocialLinks(c.Request().Context(), links); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SocialLinkResponseFromEntity(links))
}
