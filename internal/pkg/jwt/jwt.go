package jwt

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(employeeID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}
