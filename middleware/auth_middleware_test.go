package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(secret), func(c *fiber.Ctx) error {
		claims, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return c.SendString(claims.UserID.String() + ":" + string(claims.Role))
	})
	app.Get("/teacher", Protected(secret), TeacherRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestProtected(t *testing.T) {
	app := newApp()
	user := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	token, err := IssueToken(secret, user, time.Hour, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	expired, err := IssueToken(secret, user, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleRequired(t *testing.T) {
	app := newApp()

	for role, want := range map[models.Role]int{
		models.RoleTeacher: http.StatusNoContent,
		models.RoleStudent: http.StatusForbidden,
		models.RoleAdmin:   http.StatusForbidden,
	} {
		token, err := IssueToken(secret, &models.User{ID: uuid.New(), Role: role}, time.Hour, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/teacher", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestParseToken(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleTeacher}
	token, err := IssueToken(secret, user, time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}
