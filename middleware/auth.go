package middleware

import (
	"context"
	"net/http"

	"devicelicense/logger"
	"devicelicense/utils"
)

// AdminIdentity 인증된 관리자 정보
type AdminIdentity struct {
	ID       string
	Username string
	Role     string
}

// AdminFromContext 컨텍스트에 저장된 관리자 정보
func AdminFromContext(ctx context.Context) (AdminIdentity, bool) {
	admin, ok := ctx.Value(adminKey).(AdminIdentity)
	return admin, ok
}

// AdminAuth 관리자 JWT 인증 미들웨어
func AdminAuth(tokens *utils.AdminTokenCodec) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := RequestID(r.Context())

			token, ok := BearerToken(r)
			if !ok {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         ClientIP(r),
				}).Warn("Missing or malformed authorization header")
				unauthorized(w, "Authorization header required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         ClientIP(r),
					"error":      err.Error(),
				}).Warn("Invalid or expired admin token")
				unauthorized(w, "Invalid or expired token")
				return
			}

			logger.WithFields(map[string]interface{}{
				"request_id": requestID,
				"admin_id":   claims.AdminID,
				"username":   claims.Username,
			}).Debug("Admin authenticated")

			ctx := context.WithValue(r.Context(), adminKey, AdminIdentity{
				ID:       claims.AdminID,
				Username: claims.Username,
				Role:     claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
