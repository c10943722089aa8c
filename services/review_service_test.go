package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewScenario(t *testing.T) {
	f := newFixture(t)
	t1, s1 := f.teacher(t), f.student(t)
	l1 := f.lesson(t, t1.ID, s1.ID,
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		models.LessonScheduled)

	got, err := f.lessons.GetLesson(f.ctx, l1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LessonCompleted, got.Status)

	review, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l1.ID, TeacherID: t1.ID, StudentID: s1.ID, Rating: 5, Comment: "Great lesson, very helpful",
	})
	require.NoError(t, err)
	assert.Equal(t, t1.ID, review.TeacherID)
	assert.Equal(t, epoch, review.CreatedAt)
	assert.Contains(t, f.notifier.types(t1.ID), services.EventReviewCreated)

	profile, err := f.ratings.Recompute(f.ctx, t1.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, profile.Rating, 1e-9)
	assert.Equal(t, 1, profile.ReviewsCount)

	_, err = f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l1.ID, TeacherID: t1.ID, StudentID: s1.ID, Rating: 3, Comment: "Changed my mind about it",
	})
	assert.ErrorIs(t, err, services.ErrDuplicateReview)

	profile, err = f.store.TeacherProfiles().GetByUserID(f.ctx, t1.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, profile.Rating, 1e-9)
	assert.Equal(t, 1, profile.ReviewsCount)
}

func TestCreateReviewUpdatesRatingInSameCall(t *testing.T) {
	f := newFixture(t)
	teacher := f.teacher(t)

	for _, rating := range []int{5, 4, 3} {
		student := f.student(t)
		l := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)
		_, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
			LessonID: l.ID, TeacherID: teacher.ID, StudentID: student.ID, Rating: rating, Comment: "Solid lesson overall",
		})
		require.NoError(t, err)
	}

	profile, err := f.store.TeacherProfiles().GetByUserID(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, profile.Rating, 1e-9)
	assert.Equal(t, 3, profile.ReviewsCount)
	assert.Contains(t, f.cache.invalidated, teacher.ID)
}

func TestCreateReviewGateOrder(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	otherTeacher := f.teacher(t)
	otherStudent := f.student(t)
	noProfile := f.user(t, models.RoleTeacher)

	done := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)
	upcoming := f.lesson(t, teacher.ID, student.ID, epoch.Add(time.Hour), epoch.Add(2*time.Hour), models.LessonScheduled)
	cancelled := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCancelled)
	byNoProfile := f.lesson(t, noProfile.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)

	valid := services.CreateReviewInput{
		LessonID: done.ID, TeacherID: teacher.ID, StudentID: student.ID, Rating: 4, Comment: "Well structured lesson",
	}

	tests := []struct {
		name   string
		modify func(in *services.CreateReviewInput)
		want   error
	}{
		{"rating too low", func(in *services.CreateReviewInput) { in.Rating = 0 }, services.ErrInvalidRating},
		{"rating too high", func(in *services.CreateReviewInput) { in.Rating = 6 }, services.ErrInvalidRating},
		{"comment too short", func(in *services.CreateReviewInput) { in.Comment = "   short   " }, services.ErrInvalidComment},
		{"comment too long", func(in *services.CreateReviewInput) { in.Comment = strings.Repeat("a", 2001) }, services.ErrInvalidComment},
		{"unknown lesson", func(in *services.CreateReviewInput) { in.LessonID = uuid.New() }, services.ErrLessonNotFound},
		{"lesson upcoming", func(in *services.CreateReviewInput) { in.LessonID = upcoming.ID }, services.ErrLessonNotCompleted},
		{"lesson cancelled", func(in *services.CreateReviewInput) { in.LessonID = cancelled.ID }, services.ErrLessonNotCompleted},
		{"other student", func(in *services.CreateReviewInput) { in.StudentID = otherStudent.ID }, services.ErrLessonStudentMismatch},
		{"unknown teacher", func(in *services.CreateReviewInput) { in.TeacherID = uuid.New() }, services.ErrTeacherNotFound},
		{"teacher is a student", func(in *services.CreateReviewInput) { in.TeacherID = student.ID }, services.ErrTeacherNotFound},
		{"teacher without profile", func(in *services.CreateReviewInput) {
			in.LessonID = byNoProfile.ID
			in.TeacherID = noProfile.ID
		}, services.ErrTeacherProfileNotFound},
		{"other teacher", func(in *services.CreateReviewInput) { in.TeacherID = otherTeacher.ID }, services.ErrLessonTeacherMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			_, err := f.reviews.CreateReview(f.ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	reviews, err := f.reviews.ListLessonReviews(f.ctx, done.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

// Every case breaks several rules at once; the first failing check in gate
// order decides the reported error.
func TestCreateReviewGateOrderWithSeveralViolations(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	otherTeacher := f.teacher(t)
	otherStudent := f.student(t)
	noProfile := f.user(t, models.RoleTeacher)
	ghost := uuid.New()

	done := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)
	upcoming := f.lesson(t, teacher.ID, student.ID, epoch.Add(time.Hour), epoch.Add(2*time.Hour), models.LessonScheduled)
	reviewed := f.lesson(t, teacher.ID, student.ID, epoch.Add(-4*time.Hour), epoch.Add(-3*time.Hour), models.LessonCompleted)
	ghostLesson := f.lesson(t, teacher.ID, ghost, epoch.Add(-4*time.Hour), epoch.Add(-3*time.Hour), models.LessonCompleted)
	ghostReviewed := f.lesson(t, teacher.ID, ghost, epoch.Add(-6*time.Hour), epoch.Add(-5*time.Hour), models.LessonCompleted)

	for _, r := range []*models.Review{
		{LessonID: reviewed.ID, StudentID: student.ID, TeacherID: teacher.ID, Rating: 5, Comment: "inserted directly"},
		{LessonID: ghostReviewed.ID, StudentID: ghost, TeacherID: teacher.ID, Rating: 5, Comment: "inserted directly"},
	} {
		require.NoError(t, f.store.Reviews().Insert(f.ctx, r))
	}

	tests := []struct {
		name string
		in   services.CreateReviewInput
		want error
	}{
		{"rating before comment and lesson", services.CreateReviewInput{
			LessonID: uuid.New(), TeacherID: uuid.New(), StudentID: uuid.New(), Rating: 9, Comment: "bad",
		}, services.ErrInvalidRating},
		{"comment before lesson", services.CreateReviewInput{
			LessonID: uuid.New(), TeacherID: uuid.New(), StudentID: uuid.New(), Rating: 3, Comment: "bad",
		}, services.ErrInvalidComment},
		{"lesson before teacher and student", services.CreateReviewInput{
			LessonID: uuid.New(), TeacherID: uuid.New(), StudentID: otherStudent.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrLessonNotFound},
		{"not completed before mismatches", services.CreateReviewInput{
			LessonID: upcoming.ID, TeacherID: otherTeacher.ID, StudentID: otherStudent.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrLessonNotCompleted},
		{"student mismatch before teacher mismatch", services.CreateReviewInput{
			LessonID: done.ID, TeacherID: otherTeacher.ID, StudentID: otherStudent.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrLessonStudentMismatch},
		{"student mismatch before unknown teacher", services.CreateReviewInput{
			LessonID: done.ID, TeacherID: uuid.New(), StudentID: otherStudent.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrLessonStudentMismatch},
		{"unknown teacher before teacher mismatch", services.CreateReviewInput{
			LessonID: done.ID, TeacherID: student.ID, StudentID: student.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrTeacherNotFound},
		{"missing profile before teacher mismatch", services.CreateReviewInput{
			LessonID: done.ID, TeacherID: noProfile.ID, StudentID: student.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrTeacherProfileNotFound},
		{"teacher mismatch before duplicate", services.CreateReviewInput{
			LessonID: reviewed.ID, TeacherID: otherTeacher.ID, StudentID: student.ID, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrLessonTeacherMismatch},
		{"duplicate before unknown student", services.CreateReviewInput{
			LessonID: ghostReviewed.ID, TeacherID: teacher.ID, StudentID: ghost, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrDuplicateReview},
		{"unknown student last", services.CreateReviewInput{
			LessonID: ghostLesson.ID, TeacherID: teacher.ID, StudentID: ghost, Rating: 3, Comment: "Well structured lesson",
		}, services.ErrStudentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reviews.CreateReview(f.ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	reviews, err := f.reviews.ListTeacherReviews(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCreateReviewMaterializesPastLesson(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonScheduled)

	_, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l.ID, TeacherID: teacher.ID, StudentID: student.ID, Rating: 2, Comment: "Could be better paced",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LessonCompleted, f.storedStatus(t, l.ID))
}

func TestCreateReviewNotCompletedMentionsStatus(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(-10*time.Minute), epoch.Add(time.Hour), models.LessonScheduled)

	_, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l.ID, TeacherID: teacher.ID, StudentID: student.ID, Rating: 5, Comment: "Reviewing too early",
	})
	assert.ErrorIs(t, err, services.ErrLessonNotCompleted)
	assert.ErrorContains(t, err, string(models.LessonInProgress))
}

func TestCreateReviewStudentMustExist(t *testing.T) {
	f := newFixture(t)
	teacher := f.teacher(t)
	ghost := uuid.New()
	l := f.lesson(t, teacher.ID, ghost, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)

	_, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l.ID, TeacherID: teacher.ID, StudentID: ghost, Rating: 5, Comment: "Nobody wrote this",
	})
	assert.ErrorIs(t, err, services.ErrStudentNotFound)

	profile, err := f.store.TeacherProfiles().GetByUserID(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Zero(t, profile.ReviewsCount)
}

func TestCreateReviewTrimsComment(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(-2*time.Hour), epoch.Add(-time.Hour), models.LessonCompleted)

	review, err := f.reviews.CreateReview(f.ctx, services.CreateReviewInput{
		LessonID: l.ID, TeacherID: teacher.ID, StudentID: student.ID, Rating: 5, Comment: "  Patient and kind  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Patient and kind", review.Comment)

	listed, err := f.reviews.ListStudentReviews(f.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, review.ID, listed[0].ID)
}
