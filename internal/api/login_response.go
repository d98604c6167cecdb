package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	Token string   `json:"token" example:"eyJhbGciOi..."`
	User  UserInfo `json:"user"`
}

// UserInfo is the public slice of a user record; the password hash is
// never serialized.
type UserInfo struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}
