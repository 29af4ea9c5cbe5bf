package dto

import (
	"time"

	"jobtrackr/internal/entity"
)

type JobStatusRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,oneof=open applied interview offer rejected"`
	Color    string `json:"color" validate:"omitempty,max=100"`
}

type JobStatusResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func JobStatusResponseFromEntity(status *entity.JobApplicationStatus) JobStatusResponse {
	return JobStatusResponse{
		ID:       status.ID.String(),
		Name:     status.Name,
		Category: string(status.Category),
		Color:    status.Color,
	}
}

type JobSkillRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type JobSkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func JobSkillResponseFromEntity(skill *entity.JobSkill) JobSkillResponse {
	return JobSkillResponse{ID: skill.ID.String(), Name: skill.Name}
}

func JobSkillResponsesFromEntities(skills []entity.JobSkill) []JobSkillResponse {
	responses := make([]JobSkillResponse, 0, len(skills))
	for i := range skills {
		responses = append(responses, JobSkillResponseFromEntity(&skills[i]))
	}
	return responses
}

type JobApplicationRequest struct {
	Position           string   `json:"position" validate:"required,max=100"`
	CompanyName        string   `json:"company_name" validate:"required,max=100"`
	Location           string   `json:"location" validate:"omitempty,max=100"`
	AppliedDate        *Date    `json:"applied_date"`
	JobPostedDate      *Date    `json:"job_posted_date"`
	JobClosedDate      *Date    `json:"job_closed_date"`
	StatusID           string   `json:"status_id" validate:"required,uuid"`
	SkillIDs           []string `json:"skill_ids" validate:"dive,uuid"`
	PreferredSkillIDs  []string `json:"preferred_skill_ids" validate:"dive,uuid"`
	Description        *string  `json:"description"`
	RequiredExperience *int     `json:"required_experience"`
	ContactMail        *string  `json:"contact_mail" validate:"omitempty,email"`
	ApplicationThrough string   `json:"application_through" validate:"required,oneof=email website"`
	ApplicationURL     *string  `json:"application_url" validate:"omitempty,url"`
}

type JobApplicationResponse struct {
	ID                 string             `json:"id"`
	Position           string             `json:"position"`
	CompanyName        string             `json:"company_name"`
	Location           string             `json:"location"`
	AppliedDate        *Date              `json:"applied_date"`
	JobPostedDate      *Date              `json:"job_posted_date"`
	JobClosedDate      *Date              `json:"job_closed_date"`
	Status             *JobStatusResponse `json:"status,omitempty"`
	Skills             []JobSkillResponse `json:"skills"`
	PreferredSkills    []JobSkillResponse `json:"preferred_skills"`
	Description        *string            `json:"description"`
	RequiredExperience *int               `json:"required_experience"`
	ContactMail        *string            `json:"contact_mail"`
	ApplicationThrough string             `json:"application_through"`
	ApplicationURL     *string            `json:"application_url"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func JobApplicationResponseFromEntity(app *entity.JobApplication) JobApplicationResponse {
	response := JobApplicationResponse{
		ID:                 app.ID.String(),
		Position:           app.Position,
		CompanyName:        app.CompanyName,
		Location:           app.Location,
		AppliedDate:        DateFromTime(app.AppliedDate),
		JobPostedDate:      DateFromTime(app.JobPostedDate),
		JobClosedDate:      DateFromTime(app.JobClosedDate),
		Skills:             JobSkillResponsesFromEntities(app.Skills),
		PreferredSkills:    JobSkillResponsesFromEntities(app.PreferredSkills),
		Description:        app.Description,
		RequiredExperience: app.RequiredExperience,
		ContactMail:        app.ContactMail,
		ApplicationThrough: string(app.ApplicationThrough),
		ApplicationURL:     app.ApplicationURL,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
	}
	if app.Status != nil {
		status := JobStatusResponseFromEntity(app.Status)
		response.Status = &status
	}
	return response
}

func JobApplicationResponsesFromEntities(apps []entity.JobApplication) []JobApplicationResponse {
	responses := make([]JobApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, JobApplicationResponseFromEntity(&apps[i]))
	}
	return responses
}

type UserSkillRequest struct {
	SkillID    string `json:"skill_id" validate:"required,uuid"`
	Level      string `json:"level" validate:"required,oneof=beginner intermediate expert"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
}

type UserSkillResponse struct {
	ID          string            `json:"id"`
	SkillDetail *JobSkillResponse `json:"skill_detail,omitempty"`
	Level       string            `json:"level"`
	Confidence  int               `json:"confidence"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func UserSkillResponseFromEntity(skill *entity.UserSkill) UserSkillResponse {
	response := UserSkillResponse{
		ID:         skill.ID.String(),
		Level:      string(skill.Level),
		Confidence: skill.Confidence,
		CreatedAt:  skill.CreatedAt,
		UpdatedAt:  skill.UpdatedAt,
	}
	if skill.Skill != nil {
		detail := JobSkillResponseFromEntity(skill.Skill)
		response.SkillDetail = &detail
	}
	return response
}

func UserSkillResponsesFromEntities(skills []entity.UserSkill) []UserSkillResponse {
	responses := make([]UserSkillResponse, 0, len(skills))
	for i := range skills {
		responses = append(responses, UserSkillResponseFromEntity(&skills[i]))
	}
	return responses
}
