package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public projection of an identity; credentials never leave the server.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type RegisterConsumerRequest struct {
	Name string `json:"name"`
}

type RegisterConsumerResponse struct {
	Message    string `json:"message"`
	ConsumerID string `json:"consumerId"`
	Name       string `json:"name"`
}
