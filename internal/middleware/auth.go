package middleware

import (
	"context"
	"net/http"
	"strings"

	"vendormart/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// AuthMiddleware validates JWT tokens and extracts user claims. The role
// claim must parse against the closed role enumeration; free-text roles
// from a token are rejected, not trusted.
func AuthMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				respondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				respondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			tokenString := parts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if err == jwt.ErrTokenExpired {
					respondWithError(w, http.StatusUnauthorized, "token expired")
				} else {
					respondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			if !token.Valid {
				logger.Debug("Invalid token")
				respondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to extract claims from token")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				logger.Error("Missing user_id in token claims")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			if _, err := uuid.Parse(userID); err != nil {
				logger.Error("Malformed user_id in token claims", zap.String("user_id", userID))
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			roleString, ok := claims["role"].(string)
			if !ok {
				logger.Error("Missing role in token claims")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			role, err := domain.ParseRole(roleString)
			if err != nil {
				logger.Error("Unknown role in token claims", zap.String("role", roleString))
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserRoleKey, string(role))

			logger.Debug("User authenticated",
				zap.String("user_id", userID),
				zap.String("role", string(role)),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserRole extracts user role from request context
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// GetActor assembles the authenticated actor from the request context. The
// boolean is false when the request passed through no auth middleware;
// callers hand the resulting nil actor to the services, which answer with
// their own unauthenticated failure.
func GetActor(ctx context.Context) (*domain.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return nil, false
	}
	roleString, ok := GetUserRole(ctx)
	if !ok {
		return nil, false
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, false
	}
	role, err := domain.ParseRole(roleString)
	if err != nil {
		return nil, false
	}

	return &domain.Actor{ID: id, Role: role}, true
}
