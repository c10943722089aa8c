package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/educat/tutor_marketplace/middleware"
	"github.com/educat/tutor_marketplace/services"
	"github.com/educat/tutor_marketplace/uploads"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

// UploadSigner issues direct-upload signatures; nil when file storage is not configured.
type UploadSigner interface {
	Sign(now time.Time) (*uploads.Signature, error)
}

type Handler struct {
	Auth          *services.AuthService
	Lessons       *services.LessonService
	Reviews       *services.ReviewService
	Ratings       *services.RatingService
	Relationships *services.RelationshipService
	Statistics    *services.StatisticsService
	Attachments   *services.AttachmentService
	Subjects      *services.SubjectService
	Profiles      *services.ProfileService
	Signer        UploadSigner

	JWTSecret string
	JWTTTL    time.Duration
	Log       *zap.Logger
}

var statusByCode = map[services.Code]int{
	services.CodeNotFound:              fiber.StatusNotFound,
	services.CodeInvalidTransition:     fiber.StatusConflict,
	services.CodeLessonNotCompleted:    fiber.StatusUnprocessableEntity,
	services.CodeLessonStudentMismatch: fiber.StatusForbidden,
	services.CodeLessonTeacherMismatch: fiber.StatusForbidden,
	services.CodeDuplicateReview:       fiber.StatusConflict,
	services.CodeInvalidRating:         fiber.StatusBadRequest,
	services.CodeInvalidComment:        fiber.StatusBadRequest,
	services.CodeInvalidInput:          fiber.StatusBadRequest,
	services.CodeConflict:              fiber.StatusConflict,
	services.CodeStorageFailure:        fiber.StatusInternalServerError,
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	if status, ok := statusByCode[services.CodeOf(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func errorBody(code, message string) fiber.Map {
	return fiber.Map{"status": "error", "code": code, "message": message}
}

var codeByStatus = map[int]string{
	fiber.StatusBadRequest:         string(services.CodeInvalidInput),
	fiber.StatusUnauthorized:       "invalid_token",
	fiber.StatusForbidden:          "forbidden",
	fiber.StatusServiceUnavailable: "unavailable",
}

// fail writes err as a JSON error body. Storage failures are logged with
// their cause and reported with a redacted message.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, ok := codeByStatus[fe.Code]
		if !ok {
			code = "error"
		}
		return c.Status(fe.Code).JSON(errorBody(code, fe.Message))
	}

	status := StatusOf(err)
	code := services.CodeOf(err)
	message := err.Error()
	if code == services.CodeStorageFailure {
		h.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
			zap.NamedError("cause", errors.Unwrap(err)))
		message = http.StatusText(status)
	}
	return c.Status(status).JSON(errorBody(string(code), message))
}

func invalidInput(message string) error {
	return &services.Error{Code: services.CodeInvalidInput, Message: message}
}

var (
	errUnauthorized = fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
	errForbidden    = fiber.NewError(fiber.StatusForbidden, "Forbidden")
)

// parseBody decodes and validates the JSON body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return invalidInput("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" "+fe.Tag())
			}
			return invalidInput("invalid fields: " + strings.Join(fields, ", "))
		}
		return invalidInput(err.Error())
	}
	return nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, invalidInput("invalid " + name)
	}
	return id, nil
}

// timeWindow reads optional RFC 3339 "from" and "to" query parameters.
func timeWindow(c *fiber.Ctx) (services.TimeWindow, error) {
	var w services.TimeWindow
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &w.From}, {"to", &w.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return w, invalidInput(p.name + " must be an RFC 3339 timestamp")
		}
		t = t.UTC()
		*p.dst = &t
	}
	return w, nil
}

func currentUser(c *fiber.Ctx) (*middleware.Claims, error) {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return nil, errUnauthorized
	}
	return claims, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
