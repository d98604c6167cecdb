package api

// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required" example:"Write report"`
	Description string `json:"description" example:"Quarterly numbers"`
	DueDate     string `json:"due_date" example:"2024-01-01"`
	Priority    string `json:"priority" example:"high"`
}
