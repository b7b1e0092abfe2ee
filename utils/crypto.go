package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// GenerateLicenseKey 라이선스 키 생성 (형식: XXXX-XXXX-XXXX-XXXX)
func GenerateLicenseKey() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	key := strings.ToUpper(hex.EncodeToString(bytes))

	// 4자리씩 끊어서 대시로 연결
	return fmt.Sprintf("%s-%s-%s-%s", key[0:4], key[4:8], key[8:12], key[12:16]), nil
}

// GenerateID 접두사가 붙은 랜덤 ID 생성 (예: act-1a2b3c4d5e6f7a8b)
func GenerateID(prefix string) (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	id := hex.EncodeToString(bytes)
	if prefix != "" {
		return prefix + "-" + id, nil
	}
	return id, nil
}

// HashDeviceFingerprint 원본 핑거프린트를 저장용 해시로 변환
// salt가 있으면 "fingerprint:salt" 형태로 결합한 뒤 SHA-256 처리합니다.
func HashDeviceFingerprint(raw, salt string) string {
	input := raw
	if salt != "" {
		input = raw + ":" + salt
	}
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// ComposeDeviceFingerprint 디바이스 정보 조각들을 하나의 핑거프린트로 결합
// 빈 조각은 건너뛰며, 결과는 원본이 드러나지 않도록 SHA-256 hex 입니다.
func ComposeDeviceFingerprint(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	sum := sha256.Sum256([]byte(strings.Join(kept, "|")))
	return hex.EncodeToString(sum[:])
}

// HashPassword 비밀번호 해싱
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword 비밀번호 검증
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// GenerateTempPassword 혼동되는 문자(0, O, 1, l, I)를 뺀 임시 비밀번호 생성
func GenerateTempPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)]
	}
	return string(out), nil
}
