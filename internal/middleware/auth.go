package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/petcrm/internal/config"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

const ContextActor = "actor"

// Claims carried by access tokens.
type Claims struct {
	Role       string `json:"role"`
	BusinessID uint   `json:"businessId,omitempty"`
	TutorID    uint   `json:"tutorId,omitempty"`
	jwt.RegisteredClaims
}

// SignToken issues a token for user. tutorID is only set for tutor users.
func SignToken(cfg *config.Config, user *models.User, tutorID uint) (string, error) {
	now := time.Now()

	claims := Claims{
		Role:    user.Role,
		TutorID: tutorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uintToString(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}
	if user.BusinessID != nil {
		claims.BusinessID = *user.BusinessID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ActorFromClaims maps a verified token to the request actor.
func ActorFromClaims(cl *Claims) (actor.Actor, bool) {
	userID, ok := parseUint(cl.Subject)
	if !ok || userID == 0 {
		return nil, false
	}

	switch cl.Role {
	case models.RoleAdmin:
		return actor.Admin{UserID: userID}, true
	case models.RoleManager, models.RoleStaff:
		if cl.BusinessID == 0 {
			return nil, false
		}
		return actor.Staff{
			UserID:     userID,
			BusinessID: cl.BusinessID,
			Manager:    cl.Role == models.RoleManager,
		}, true
	case models.RoleTutor:
		if cl.BusinessID == 0 || cl.TutorID == 0 {
			return nil, false
		}
		return actor.Tutor{
			UserID:     userID,
			TutorID:    cl.TutorID,
			BusinessID: cl.BusinessID,
		}, true
	}
	return nil, false
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header")
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid_token")
			return
		}

		a, ok := ActorFromClaims(&claims)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid_token_payload")
			return
		}

		c.Set(ContextActor, a)
		c.Next()
	}
}

// ActorFrom returns the actor set by AuthMiddleware, or nil.
func ActorFrom(c *gin.Context) actor.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	a, _ := v.(actor.Actor)
	return a
}

// RequireStaff lets staff and admins through.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch ActorFrom(c).(type) {
		case actor.Staff, actor.Admin:
			c.Next()
		default:
			abort(c, http.StatusForbidden, httperr.CodeForbidden)
		}
	}
}

// RequireManager lets business managers and admins through.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch a := ActorFrom(c).(type) {
		case actor.Admin:
			c.Next()
		case actor.Staff:
			if a.Manager {
				c.Next()
				return
			}
			abort(c, http.StatusForbidden, httperr.CodeForbidden)
		default:
			abort(c, http.StatusForbidden, httperr.CodeForbidden)
		}
	}
}

func abort(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{Code: code, Message: code})
}
