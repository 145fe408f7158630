package domain

import (
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/spotmarket/base/ctx"
)

const TokenIssuer = "spotd"

// OperatorClaims names the account an operator token acts for. Subject holds
// the account and Id a random token id that shows up in request logs.
type OperatorClaims struct {
	jwt.StandardClaims
}

func (o *OperatorClaims) Account() Name {
	return Name(o.Subject)
}

// AuthUsecase issues operator tokens. A token only says which account pushes
// actions, the engine still checks authority on every action.
type AuthUsecase interface {
	SignToken(c ctx.Ctx, account Name, ttl time.Duration) (string, error)
	ParseToken(c ctx.Ctx, token string) (*OperatorClaims, error)
}
