// Package api defines the shared request/response shapes of the HTTP API.
package api

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for successful requests
// that carry no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the JSON body returned by /login and /refresh.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
