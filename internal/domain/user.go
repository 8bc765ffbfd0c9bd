package domain

import "time"

// Roles a user can hold. New accounts always start as students; role changes
// go through the update endpoint and are validated against this set.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

type User struct {
	UserID         string    `json:"id" dynamodbav:"user_id"`
	FirstName      string    `json:"first_name" dynamodbav:"first_name"`
	LastName       string    `json:"last_name" dynamodbav:"last_name"`
	SecondLastName string    `json:"second_last_name" dynamodbav:"second_last_name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Boleta         *string   `json:"boleta" dynamodbav:"boleta"`
	Role           string    `json:"role" dynamodbav:"role"`
	EmailVerified  bool      `json:"email_verified" dynamodbav:"email_verified"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type SignUpRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	SecondLastName string `json:"second_last_name"`
	Email          string `json:"email" validate:"required,email,institutional_email"`
	Boleta         string `json:"boleta" validate:"required"`
}

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	SecondLastName *string `json:"second_last_name"`
	Email          *string `json:"email" validate:"omitempty,email,institutional_email"`
	Boleta         *string `json:"boleta"`
	Role           *string `json:"role"`
}
