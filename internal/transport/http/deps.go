package http

import (
	"github.com/go-users-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-users-api/internal/infrastructure/jwt"
	"github.com/go-users-api/internal/infrastructure/smtp"
	"github.com/go-users-api/internal/pkg/code"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	CodeRepo    *dynamo.CodeRepo
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
	Generator   *code.Generator
}
