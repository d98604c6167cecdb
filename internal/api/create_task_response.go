package api

// swagger:model api.CreateTaskResponse
type CreateTaskResponse struct {
	ID string `json:"id" example:"6f1c2b1e-0b1a-4e64-9f6e-2d6a2d9c7b11"`
}
