package util

import (
	"errors"
	"strconv"
	"time"

	"health_edu_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 token. The token id is a fresh uuid so the
// token can be revoked on sign-out.
func GenerateJWT(profile *model.Profile, secret string, expiration time.Duration, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		UserID: profile.ID,
		Email:  profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(profile.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token claims")
}

// Session converts verified claims into the session the stores understand.
func (c *Claims) Session() *model.Session {
	s := &model.Session{
		UserID:  c.UserID,
		Email:   c.Email,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

// GetSessionFromContext returns nil for anonymous (demo) requests.
func GetSessionFromContext(c *gin.Context) *model.Session {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	s, ok := v.(*model.Session)
	if !ok {
		return nil
	}
	return s
}

// GetDeviceID reads the device scope for local progress.
func GetDeviceID(c *gin.Context) string {
	id := c.GetHeader(HeaderDeviceID)
	if len(id) > MaxDeviceIDLength {
		return id[:MaxDeviceIDLength]
	}
	return id
}
