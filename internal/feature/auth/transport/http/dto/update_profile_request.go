package dto

// UpdateProfileReq represents the request body for the PUT /me endpoint.
type UpdateProfileReq struct {
	Username string `json:"username" binding:"required,max=80"`
	Name     string `json:"name" binding:"required,max=30"`
	Email    string `json:"email" binding:"required,email"`
}
