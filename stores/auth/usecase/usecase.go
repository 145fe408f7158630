package usecase

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/validator"
	"github.com/x-xyz/spotmarket/domain"
)

type impl struct {
	jwtSecret []byte
	now       func() time.Time
}

func New(jwtSecret string) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

func (im *impl) SignToken(c ctx.Ctx, account domain.Name, ttl time.Duration) (string, error) {
	if !validator.IsValidName(string(account)) {
		return "", xerrors.Errorf("invalid account %q: %w", account, domain.ErrBadParamInput)
	}

	now := im.now()
	claims := domain.OperatorClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Issuer:    domain.TokenIssuer,
			Subject:   string(account),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(im.jwtSecret)
	if err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (*domain.OperatorClaims, error) {
	claims := &domain.OperatorClaims{}
	token, err := jwt.ParseWithClaims(str, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || !claims.VerifyIssuer(domain.TokenIssuer, true) || !validator.IsValidName(claims.Subject) {
		return nil, domain.ErrBadParamInput
	}
	return claims, nil
}
