package handlers

import (
	"errors"
	"time"

	"github.com/educat/tutor_marketplace/middleware"
	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	FullName        string  `json:"full_name" validate:"required,min=2,max=512"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	Role            string  `json:"role" validate:"required,oneof=student teacher"`
	Education       string  `json:"education" validate:"required_if=Role teacher,max=512"`
	ExperienceYears int     `json:"experience_years" validate:"min=0,max=50"`
	HourlyRate      float64 `json:"hourly_rate" validate:"min=0"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	user, err := h.Auth.Register(c.UserContext(), services.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		Role:            models.Role(req.Role),
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func (h *Handler) LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	user, err := h.Auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("invalid_credentials", "Invalid email or password"))
		}
		return h.fail(c, err)
	}

	// Tokens are verified against wall time, whatever clock the services use.
	token, err := middleware.IssueToken(h.JWTSecret, user, h.JWTTTL, time.Now())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": toUserResponse(user)})
}
