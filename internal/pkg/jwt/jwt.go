package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the HRIS auth service. Issuing is
// kept for tests and local tooling.
type Service interface {
	GenerateAccessToken(claims user.Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(claims user.Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"role":       string(claims.Role),
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the caller identity placed by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (user.Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Claims{}, fmt.Errorf("%w: %v", user.ErrInvalidClaims, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Claims{}, fmt.Errorf("%w: user_id claim is missing", user.ErrInvalidClaims)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return user.Claims{}, user.ErrCompanyIDRequired
	}

	role, _ := claims["role"].(string)

	return user.Claims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      user.Role(role),
	}, nil
}
