package services_test

import (
	"testing"

	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetProfile(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	teacher := f.teacher(t)
	student := f.student(t)

	got, err := profiles.Get(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, got.User.ID)
	require.NotNil(t, got.Teacher)
	assert.Equal(t, "BSc", got.Teacher.Education)

	got, err = profiles.Get(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Teacher)

	_, err = profiles.Get(f.ctx, uuid.New())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUpdateTeacherProfileKeepsRating(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	teacher := f.teacher(t)
	insertReview(t, f, teacher.ID, 4)
	_, err := f.ratings.Recompute(f.ctx, teacher.ID)
	require.NoError(t, err)

	education, rate, years := "  PhD Physics ", 55.5, 7
	updated, err := profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{
		Education:       &education,
		ExperienceYears: &years,
		HourlyRate:      &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "PhD Physics", updated.Education)

	stored, err := f.store.TeacherProfiles().GetByUserID(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "PhD Physics", stored.Education)
	assert.Equal(t, 7, stored.ExperienceYears)
	assert.InDelta(t, 55.5, stored.HourlyRate, 1e-9)
	assert.InDelta(t, 4.0, stored.Rating, 1e-9)
	assert.Equal(t, 1, stored.ReviewsCount)
}

func TestUpdateTeacherProfileRejections(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	teacher := f.teacher(t)
	blank, tooLong, negative := " ", 51, -1.0

	tests := []struct {
		name string
		in   services.UpdateTeacherProfileInput
	}{
		{"blank education", services.UpdateTeacherProfileInput{Education: &blank}},
		{"too much experience", services.UpdateTeacherProfileInput{ExperienceYears: &tooLong}},
		{"negative rate", services.UpdateTeacherProfileInput{HourlyRate: &negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profiles.UpdateTeacherProfile(f.ctx, teacher.ID, tt.in)
			assert.Equal(t, services.CodeInvalidInput, services.CodeOf(err))
		})
	}

	_, err := profiles.UpdateTeacherProfile(f.ctx, f.student(t).ID, services.UpdateTeacherProfileInput{})
	assert.ErrorIs(t, err, services.ErrTeacherProfileNotFound)
}

func TestUpdateTeacherProfileReplacesSubjects(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	teacher := f.teacher(t)
	math, physics, chemistry := f.subject(t), f.subject(t), f.subject(t)

	ids := []uuid.UUID{math.ID, physics.ID}
	updated, err := profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{SubjectIDs: &ids})
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, updated.SubjectIDs)

	ids = []uuid.UUID{chemistry.ID}
	_, err = profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{SubjectIDs: &ids})
	require.NoError(t, err)
	got, err := profiles.Get(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{chemistry.ID}, got.Teacher.SubjectIDs)

	rate := 30.0
	_, err = profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{HourlyRate: &rate})
	require.NoError(t, err)
	got, err = profiles.Get(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{chemistry.ID}, got.Teacher.SubjectIDs, "subjects stay when the input omits them")

	ids = []uuid.UUID{}
	updated, err = profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{SubjectIDs: &ids})
	require.NoError(t, err)
	assert.Empty(t, updated.SubjectIDs)
}

func TestUpdateTeacherProfileSubjectsRollBackTogether(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	teacher := f.teacher(t)
	known := f.subject(t)

	education := "MSc"
	ids := []uuid.UUID{known.ID, uuid.New()}
	_, err := profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{
		Education:  &education,
		SubjectIDs: &ids,
	})
	assert.ErrorIs(t, err, services.ErrSubjectNotFound)

	ids = []uuid.UUID{known.ID, known.ID}
	_, err = profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{SubjectIDs: &ids})
	assert.Equal(t, services.CodeInvalidInput, services.CodeOf(err))

	got, err := profiles.Get(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "BSc", got.Teacher.Education)
	assert.Empty(t, got.Teacher.SubjectIDs)
}

func TestSearchTeachers(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	math, physics := f.subject(t), f.subject(t)

	setup := func(rate float64, years int, rating float64, subjects ...uuid.UUID) uuid.UUID {
		teacher := f.teacher(t)
		_, err := profiles.UpdateTeacherProfile(f.ctx, teacher.ID, services.UpdateTeacherProfileInput{
			HourlyRate:      &rate,
			ExperienceYears: &years,
			SubjectIDs:      &subjects,
		})
		require.NoError(t, err)
		profile, err := f.store.TeacherProfiles().GetByUserID(f.ctx, teacher.ID)
		require.NoError(t, err)
		profile.Rating = rating
		require.NoError(t, f.store.TeacherProfiles().Save(f.ctx, profile))
		return teacher.ID
	}
	cheap := setup(20, 1, 3.5, math.ID)
	senior := setup(60, 12, 4.8, math.ID, physics.ID)
	physicist := setup(40, 5, 4.1, physics.ID)

	ptr := func(v float64) *float64 { return &v }
	years := 5
	tests := []struct {
		name   string
		filter services.TeacherFilter
		want   []uuid.UUID
	}{
		{"everyone best rated first", services.TeacherFilter{}, []uuid.UUID{senior, physicist, cheap}},
		{"by subject", services.TeacherFilter{SubjectID: &math.ID}, []uuid.UUID{senior, cheap}},
		{"price range", services.TeacherFilter{MinPrice: ptr(30), MaxPrice: ptr(50)}, []uuid.UUID{physicist}},
		{"experience", services.TeacherFilter{MinExperience: &years}, []uuid.UUID{senior, physicist}},
		{"rating and subject", services.TeacherFilter{SubjectID: &physics.ID, MinRating: ptr(4.5)}, []uuid.UUID{senior}},
		{"nothing matches", services.TeacherFilter{MaxPrice: ptr(10)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := profiles.SearchTeachers(f.ctx, tt.filter)
			require.NoError(t, err)
			var ids []uuid.UUID
			for _, p := range got {
				ids = append(ids, p.UserID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	got, err := profiles.SearchTeachers(f.ctx, services.TeacherFilter{SubjectID: &physics.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []uuid.UUID{math.ID, physics.ID}, got[0].SubjectIDs)
	assert.NotEmpty(t, got[0].User.Email)
}

func TestSearchTeachersRejectsBadFilters(t *testing.T) {
	f := newFixture(t)
	profiles := services.NewProfileService(f.store, zap.NewNop())
	ptr := func(v float64) *float64 { return &v }
	negative := -1

	for name, filter := range map[string]services.TeacherFilter{
		"negative price":  {MinPrice: ptr(-5)},
		"inverted range":  {MinPrice: ptr(50), MaxPrice: ptr(10)},
		"negative years":  {MinExperience: &negative},
		"rating too high": {MinRating: ptr(6)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := profiles.SearchTeachers(f.ctx, filter)
			assert.Equal(t, services.CodeInvalidInput, services.CodeOf(err))
		})
	}
}
