package dto

import (
	"time"

	"jobtrackr/internal/entity"
)

type LearningStatusRequest struct {
	Name     string `json:"name" validate:"required,max=20"`
	Category string `json:"category" validate:"required,oneof=start in_progress completed"`
	Color    string `json:"color" validate:"omitempty,max=20"`
}

type LearningStatusResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func LearningStatusResponseFromEntity(status *entity.LearningStatus) LearningStatusResponse {
	return LearningStatusResponse{
		ID:       status.ID.String(),
		Name:     status.Name,
		Category: string(status.Category),
		Color:    status.Color,
	}
}

type LearningPlanRequest struct {
	Name                  string `json:"name" validate:"required,max=100"`
	Description           string `json:"description"`
	ExpectedStartedDate   *Date  `json:"expected_started_date" validate:"required"`
	ExpectedCompletedDate *Date  `json:"expected_completed_date" validate:"required"`
	ActualStartedDate     *Date  `json:"actual_started_date"`
	ActualCompletedDate   *Date  `json:"actual_completed_date"`
	StatusID              string `json:"status_id" validate:"required,uuid"`
	CompletedPercentage   int    `json:"completed_percentage" validate:"min=0,max=100"`
}

type LearningPlanResponse struct {
	ID                    string                  `json:"id"`
	Name                  string                  `json:"name"`
	Description           string                  `json:"description"`
	ExpectedStartedDate   *Date                   `json:"expected_started_date"`
	ExpectedCompletedDate *Date                   `json:"expected_completed_date"`
	ActualStartedDate     *Date                   `json:"actual_started_date"`
	ActualCompletedDate   *Date                   `json:"actual_completed_date"`
	Status                *LearningStatusResponse `json:"status,omitempty"`
	CompletedPercentage   int                     `json:"completed_percentage"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
}

func LearningPlanResponseFromEntity(plan *entity.LearningPlan) LearningPlanResponse {
	response := LearningPlanResponse{
		ID:                    plan.ID.String(),
		Name:                  plan.Name,
		Description:           plan.Description,
		ExpectedStartedDate:   DateFromTime(plan.ExpectedStartedDate),
		ExpectedCompletedDate: DateFromTime(plan.ExpectedCompletedDate),
		ActualStartedDate:     DateFromTime(plan.ActualStartedDate),
		ActualCompletedDate:   DateFromTime(plan.ActualCompletedDate),
		CompletedPercentage:   plan.CompletedPercentage,
		CreatedAt:             plan.CreatedAt,
		UpdatedAt:             plan.UpdatedAt,
	}
	if plan.Status != nil {
		status := LearningStatusResponseFromEntity(plan.Status)
		response.Status = &status
	}
	return response
}

func LearningPlanResponsesFromEntities(plans []entity.LearningPlan) []LearningPlanResponse {
	responses := make([]LearningPlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, LearningPlanResponseFromEntity(&plans[i]))
	}
	return responses
}

type LearningResourceRequest struct {
	Name                  string `json:"name" validate:"required,max=100"`
	ResourceType          string `json:"resource_type" validate:"required,oneof=video article book course"`
	ResourceURL           string `json:"resource_url" validate:"required,url"`
	PlanID                string `json:"plan_id" validate:"required,uuid"`
	StatusID              string `json:"status_id" validate:"required,uuid"`
	ExpectedStartedDate   *Date  `json:"expected_started_date" validate:"required"`
	ExpectedCompletedDate *Date  `json:"expected_completed_date" validate:"required"`
	ActualStartedDate     *Date  `json:"actual_started_date"`
	ActualCompletedDate   *Date  `json:"actual_completed_date"`
	Description           string `json:"description"`
	CompletedPercentage   int    `json:"completed_percentage" validate:"min=0,max=100"`
}

type LearningResourceResponse struct {
	ID                    string                  `json:"id"`
	Name                  string                  `json:"name"`
	ResourceType          string                  `json:"resource_type"`
	ResourceURL           string                  `json:"resource_url"`
	PlanID                string                  `json:"plan_id"`
	Status                *LearningStatusResponse `json:"status,omitempty"`
	ExpectedStartedDate   *Date                   `json:"expected_started_date"`
	ExpectedCompletedDate *Date                   `json:"expected_completed_date"`
	ActualStartedDate     *Date                   `json:"actual_started_date"`
	ActualCompletedDate   *Date                   `json:"actual_completed_date"`
	Description           string                  `json:"description"`
	CompletedPercentage   int                     `json:"completed_percentage"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
}

func LearningResourceResponseFromEntity(resource *entity.LearningResource) LearningResourceResponse {
	response := LearningResourceResponse{
		ID:                    resource.ID.String(),
		Name:                  resource.Name,
		ResourceType:          string(resource.ResourceType),
		ResourceURL:           resource.ResourceURL,
		PlanID:                resource.PlanID.String(),
		ExpectedStartedDate:   DateFromTime(resource.ExpectedStartedDate),
		ExpectedCompletedDate: DateFromTime(resource.ExpectedCompletedDate),
		ActualStartedDate:     DateFromTime(resource.ActualStartedDate),
		ActualCompletedDate:   DateFromTime(resource.ActualCompletedDate),
		Description:           resource.Description,
		CompletedPercentage:   resource.CompletedPercentage,
		CreatedAt:             resource.CreatedAt,
		UpdatedAt:             resource.UpdatedAt,
	}
	if resource.Status != nil {
		status := LearningStatusResponseFromEntity(resource.Status)
		response.Status = &status
	}
	return response
}

func LearningResourceResponsesFromEntities(resources []entity.LearningResource) []LearningResourceResponse {
	responses := make([]LearningResourceResponse, 0, len(resources))
	for i := range resources {
		responses = append(responses, LearningResourceResponseFromEntity(&resources[i]))
	}
	return responses
}

// KanbanColumnResponse is one board column: a learning status with the plans
// and resources currently in it.
type KanbanColumnResponse struct {
	Status    LearningStatusResponse     `json:"status"`
	Plans     []LearningPlanResponse     `json:"plans"`
	Resources []LearningResourceResponse `json:"resources"`
}

func KanbanBoardFromEntities(statuses []entity.LearningStatus) []KanbanColumnResponse {
	columns := make([]KanbanColumnResponse, 0, len(statuses))
	for i := range statuses {
		status := &statuses[i]
		columns = append(columns, KanbanColumnResponse{
			Status:    LearningStatusResponseFromEntity(status),
			Plans:     LearningPlanResponsesFromEntities(status.Plans),
			Resources: LearningResourceResponsesFromEntities(status.Resources),
		})
	}
	return columns
}
