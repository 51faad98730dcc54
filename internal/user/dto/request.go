package dto

type CreateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
