package api

// UpdateTaskRequest is a partial merge: nil fields are left untouched.
// Owner email and id are not accepted here.
// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" example:"Write report"`
	Description *string `json:"description,omitempty" example:"Quarterly numbers"`
	DueDate     *string `json:"due_date,omitempty" example:"2024-01-01"`
	Priority    *string `json:"priority,omitempty" example:"low"`
	Status      *string `json:"status,omitempty" example:"Done"`
}
