package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 토큰 용도 구분자
const (
	TokenTypeActivation = "activation"
	TokenTypeAdmin      = "admin"
)

// ErrInvalidToken 서명, 알고리즘, 만료, 용도 중 하나라도 맞지 않는 토큰
var ErrInvalidToken = errors.New("invalid or expired token")

// ActivationClaims 활성화 토큰 클레임
type ActivationClaims struct {
	LicenseID    string `json:"license_id"`
	ActivationID string `json:"activation_id"`
	DeviceIDHash string `json:"device_id_hash"`
	Type         string `json:"type"`
	jwt.RegisteredClaims
}

// AdminClaims 관리자 토큰 클레임
type AdminClaims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// hs256 HS256 서명/검증 공통 부분
type hs256 struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (h hs256) registered() (jwt.RegisteredClaims, time.Time) {
	issuedAt := h.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(h.ttl)
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}, expiresAt
}

func (h hs256) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

func (h hs256) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return h.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(h.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// ActivationTokenCodec 활성화 토큰 발급/검증
type ActivationTokenCodec struct {
	hs256
}

// NewActivationTokenCodec 서명 키와 유효 기간으로 코덱 생성
func NewActivationTokenCodec(secret string, ttl time.Duration) *ActivationTokenCodec {
	return &ActivationTokenCodec{hs256{secret: []byte(secret), ttl: ttl, now: time.Now}}
}

// WithClock 테스트용 시계 주입
func (c *ActivationTokenCodec) WithClock(now func() time.Time) *ActivationTokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue 라이선스/활성화/디바이스 해시를 묶은 토큰을 발급하고 만료 시각을 함께 반환
func (c *ActivationTokenCodec) Issue(licenseID, activationID, deviceHash string) (string, time.Time, error) {
	registered, expiresAt := c.registered()
	claims := &ActivationClaims{
		LicenseID:        licenseID,
		ActivationID:     activationID,
		DeviceIDHash:     deviceHash,
		Type:             TokenTypeActivation,
		RegisteredClaims: registered,
	}

	token, err := c.sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign activation token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 토큰 검증. 실패 시 ErrInvalidToken 을 감싼 에러 반환
func (c *ActivationTokenCodec) Verify(tokenString string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeActivation {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	if claims.ActivationID == "" || claims.LicenseID == "" {
		return nil, fmt.Errorf("%w: missing activation binding", ErrInvalidToken)
	}
	return claims, nil
}

// AdminTokenCodec 관리자 로그인 토큰 발급/검증
type AdminTokenCodec struct {
	hs256
}

// NewAdminTokenCodec 관리자 토큰 코덱 생성
func NewAdminTokenCodec(secret string, ttl time.Duration) *AdminTokenCodec {
	return &AdminTokenCodec{hs256{secret: []byte(secret), ttl: ttl, now: time.Now}}
}

// Issue 관리자 토큰 발급
func (c *AdminTokenCodec) Issue(adminID, username, role string) (string, time.Time, error) {
	registered, expiresAt := c.registered()
	claims := &AdminClaims{
		AdminID:          adminID,
		Username:         username,
		Role:             role,
		Type:             TokenTypeAdmin,
		RegisteredClaims: registered,
	}

	token, err := c.sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign admin token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 관리자 토큰 검증
func (c *AdminTokenCodec) Verify(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAdmin {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	return claims, nil
}
