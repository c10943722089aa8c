package services

import (
	"context"
	"errors"
	"strings"

	"github.com/educat/tutor_marketplace/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = &Error{Code: CodeInvalidInput, Message: "invalid email or password"}

type AuthService struct {
	store Store
	log   *zap.Logger
}

func NewAuthService(store Store, log *zap.Logger) *AuthService {
	return &AuthService{store: store, log: log.Named("auth")}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     models.Role

	// Teacher profile fields, ignored for students.
	Education       string
	ExperienceYears int
	HourlyRate      float64
}

// Register creates the user and, for teachers, the teacher profile in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Role != models.RoleStudent && in.Role != models.RoleTeacher {
		return nil, newError(CodeInvalidInput, "role must be student or teacher")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storageFailure(err)
	}

	user := &models.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hashed),
		Role:     in.Role,
		IsActive: true,
	}
	err = s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.Users().GetByEmail(ctx, user.Email); err == nil {
			return newError(CodeConflict, "email already exists")
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if user.Role != models.RoleTeacher {
			return nil
		}
		return tx.TeacherProfiles().Create(ctx, &models.TeacherProfile{
			UserID:          user.ID,
			Education:       in.Education,
			ExperienceYears: in.ExperienceYears,
			HourlyRate:      in.HourlyRate,
		})
	})
	if err != nil {
		return nil, storageFailure(err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageFailure(err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
