package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"mess-booking/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容：使用者 ID 與角色
type CustomClaims struct {
	UserID int        `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) IsAdmin() bool { return c.Role.IsAdmin() }

// Tokens 以 HS256 簽發與驗證存取令牌
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue 依據使用者 ID 與角色產生 JWT
func (t *Tokens) Issue(user model.User) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("token secret not set")
	}

	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Role:   user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify 驗證並解析 JWT 令牌
func (t *Tokens) Verify(tokenString string) (*CustomClaims, error) {
	if len(t.secret) == 0 {
		return nil, errors.New("token secret not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != model.RoleStandard && claims.Role != model.RoleAdmin {
		return nil, fmt.Errorf("invalid role %q", claims.Role)
	}

	return claims, nil
}

// AuthenticateUser 以 bcrypt 比對使用者密碼
func AuthenticateUser(user model.User, password string) error {
	if user.PasswordHash == "" {
		return errors.New("invalid password")
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}
