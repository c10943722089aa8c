package services_test

import (
	"testing"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTeacherCreatesProfile(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(f.ctx, services.RegisterInput{
		FullName: "Ada Lovelace", Email: " Ada@Example.com ", Password: "s3cret-pass",
		Role: models.RoleTeacher, Education: "Analytical Engines", ExperienceYears: 7, HourlyRate: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	profile, err := f.store.TeacherProfiles().GetByUserID(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, profile.ExperienceYears)

	got, err := f.auth.Authenticate(f.ctx, "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.auth.Authenticate(f.ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRegisterRejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(f.ctx, services.RegisterInput{FullName: "Root", Email: "root@example.com", Password: "pw", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = f.auth.Register(f.ctx, services.RegisterInput{FullName: "S", Email: "s@example.com", Password: "pw", Role: models.RoleStudent})
	require.NoError(t, err)
	_, err = f.auth.Register(f.ctx, services.RegisterInput{FullName: "S2", Email: "S@example.com", Password: "pw", Role: models.RoleStudent})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = f.auth.Authenticate(f.ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSubjects(t *testing.T) {
	f := newFixture(t)

	_, err := f.subjects.Create(f.ctx, "  ", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	math, err := f.subjects.Create(f.ctx, "Mathematics", "")
	require.NoError(t, err)
	assert.Nil(t, math.Description)
	_, err = f.subjects.Create(f.ctx, "Biology", "Cells and more")
	require.NoError(t, err)

	_, err = f.subjects.Create(f.ctx, "Mathematics", "")
	assert.ErrorIs(t, err, services.ErrConflict)

	subjects, err := f.subjects.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Biology", subjects[0].Name)
}

func TestPreparationPrograms(t *testing.T) {
	f := newFixture(t)

	_, err := f.subjects.CreatePreparationProgram(f.ctx, "", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	exam, err := f.subjects.CreatePreparationProgram(f.ctx, " State exam ", "Final school exam")
	require.NoError(t, err)
	assert.Equal(t, "State exam", exam.Name)
	require.NotNil(t, exam.Description)
	_, err = f.subjects.CreatePreparationProgram(f.ctx, "Olympiad", "")
	require.NoError(t, err)

	_, err = f.subjects.CreatePreparationProgram(f.ctx, "State exam", "")
	assert.ErrorIs(t, err, services.ErrConflict)

	programs, err := f.subjects.ListPreparationPrograms(f.ctx)
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "Olympiad", programs[0].Name)
	assert.Equal(t, exam.ID, programs[1].ID)
}
