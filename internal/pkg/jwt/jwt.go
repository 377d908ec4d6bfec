package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Service interface {
	GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	sseTokenExpiration    time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration, sseTokenExpiration time.Duration) Service {
	if sseTokenExpiration <= 0 {
		sseTokenExpiration = 5 * time.Minute
	}
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		sseTokenExpiration:    sseTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken signs the actor attributes the leave engine relies on.
func (j *JWTService) GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    actor.ID,
		"name":       actor.Name,
		"role":       string(actor.Role),
		"department": string(actor.Department),
		"type":       TokenTypeAccess,
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresIn = int(j.sseTokenExpiration.Seconds())
	expiresAt := time.Now().Add(j.sseTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok = userIDVal.(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

// ActorFromClaims builds the actor of an access token. Tokens of another
// type or with an unknown role or department are rejected.
func ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != TokenTypeAccess {
		return user.Actor{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	actor := user.Actor{
		ID:         userID,
		Name:       name,
		Role:       user.Role(role),
		Department: user.Department(department),
	}
	if actor.ID == "" || !actor.Role.Valid() || !actor.Department.Valid() {
		return user.Actor{}, ErrInvalidToken
	}
	if actor.Name == "" {
		actor.Name = actor.ID
	}

	return actor, nil
}
