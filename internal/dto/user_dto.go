package dto

import "jobtrackr/internal/entity"

type ProfileResponse struct {
	ID                string  `json:"id"`
	Bio               *string `json:"bio"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CoverPhotoURL     *string `json:"cover_photo_url"`
	ResumeURL         *string `json:"resume_url"`
}

func ProfileResponseFromEntity(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                profile.ID.String(),
		Bio:               profile.Bio,
		ProfilePictureURL: profile.ProfilePictureURL,
		CoverPhotoURL:     profile.CoverPhotoURL,
		ResumeURL:         profile.ResumeURL,
	}
}

type ProfileUpdateRequest struct {
	Bio               *string `json:"bio"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
	CoverPhotoURL     *string `json:"cover_photo_url" validate:"omitempty,url"`
	ResumeURL         *string `json:"resume_url" validate:"omitempty,url"`
}

type SocialLinkResponse struct {
	ID        string  `json:"id"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
}

func SocialLinkResponseFromEntity(links *entity.SocialLink) SocialLinkResponse {
	return SocialLinkResponse{
		ID:        links.ID.String(),
		LinkedIn:  links.LinkedIn,
		GitHub:    links.GitHub,
		Twitter:   links.Twitter,
		Facebook:  links.Facebook,
		Instagram: links.Instagram,
	}
}

type SocialLinkUpdateRequest struct {
	LinkedIn  *string `json:"linkedin" validate:"omitempty,url"`
	GitHub    *string `json:"github" validate:"omitempty,url"`
	Twitter   *string `json:"twitter" validate:"omitempty,url"`
	Facebook  *string `json:"facebook" validate:"omitempty,url"`
	Instagram *string `json:"instagram" validate:"omitempty,url"`
}

type UserCreateRequest struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,e164"`
	FirstName       string `json:"first_name" validate:"omitempty,max=30"`
	LastName        string `json:"last_name" validate:"omitempty,max=30"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

type UserUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,max=30"`
	IsActive  *bool   `json:"is_active"`
}
