package auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,orgdomain"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginPayload is a LoginRequest that passed the login schema.
type LoginPayload struct {
	Email    string
	Password string
}

type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SessionResponse struct {
	User UserResponse `json:"user"`
}
