package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uuid.UUID
	Role   models.Role
}

func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "code": "missing_token", "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "code": "invalid_token", "message": "Invalid or expired JWT"})
}

// IssueToken signs an HS256 token carrying the user id and role.
func IssueToken(secret string, user *models.User, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a raw token outside the fiber middleware chain.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claimsFrom(claims)
}

func claimsFrom(claims jwt.MapClaims) (*Claims, error) {
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return &Claims{UserID: userID, Role: models.Role(role)}, nil
}

// CurrentUser returns the claims stored by Protected.
func CurrentUser(c *fiber.Ctx) (*Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claimsFrom(claims)
}

func RoleRequired(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "code": "invalid_token", "message": "Invalid or expired JWT"})
		}
		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"code":    "forbidden",
				"message": fmt.Sprintf("Forbidden: %s access required", role),
			})
		}
		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return RoleRequired(models.RoleAdmin)
}

func TeacherRequired() fiber.Handler {
	return RoleRequired(models.RoleTeacher)
}

func StudentRequired() fiber.Handler {
	return RoleRequired(models.RoleStudent)
}
