package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/repository/memory"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events map[uuid.UUID][]services.Event
}

func (n *recordingNotifier) Notify(userID uuid.UUID, event services.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.events == nil {
		n.events = make(map[uuid.UUID][]services.Event)
	}
	n.events[userID] = append(n.events[userID], event)
}

func (n *recordingNotifier) types(userID uuid.UUID) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events[userID] {
		out = append(out, e.Type)
	}
	return out
}

type mapCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]*models.TeacherStatistics
	invalidated []uuid.UUID
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[uuid.UUID]*models.TeacherStatistics)}
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) (*models.TeacherStatistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[id]
	return s, ok
}

func (c *mapCache) Set(_ context.Context, stats *models.TeacherStatistics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[stats.TeacherID] = stats
}

func (c *mapCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	clock    *services.FixedClock
	notifier *recordingNotifier
	cache    *mapCache

	lessons       *services.LessonService
	ratings       *services.RatingService
	reviews       *services.ReviewService
	relationships *services.RelationshipService
	statistics    *services.StatisticsService
	attachments   *services.AttachmentService
	auth          *services.AuthService
	subjects      *services.SubjectService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()
	f := &fixture{
		ctx:      context.Background(),
		store:    memory.New(),
		clock:    &services.FixedClock{At: epoch},
		notifier: &recordingNotifier{},
		cache:    newMapCache(),
	}
	f.lessons = services.NewLessonService(f.store, f.clock, f.cache, f.notifier, log)
	f.ratings = services.NewRatingService(f.store, f.cache, log)
	f.reviews = services.NewReviewService(f.store, f.lessons, f.ratings, f.clock, f.notifier, log)
	f.relationships = services.NewRelationshipService(f.store, f.clock, f.cache, f.notifier, log)
	f.statistics = services.NewStatisticsService(f.store, f.clock, f.cache, log)
	f.attachments = services.NewAttachmentService(f.store, nil, f.clock, log)
	f.auth = services.NewAuthService(f.store, log)
	f.subjects = services.NewSubjectService(f.store)
	return f
}

func (f *fixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		FullName: string(role),
		Email:    uuid.NewString() + "@example.com",
		Password: "pw",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u
}

// teacher creates a teacher user together with its profile.
func (f *fixture) teacher(t *testing.T) *models.User {
	t.Helper()
	u := f.user(t, models.RoleTeacher)
	require.NoError(t, f.store.TeacherProfiles().Create(f.ctx, &models.TeacherProfile{UserID: u.ID, Education: "BSc"}))
	return u
}

func (f *fixture) student(t *testing.T) *models.User {
	t.Helper()
	return f.user(t, models.RoleStudent)
}

func (f *fixture) subject(t *testing.T) *models.Subject {
	t.Helper()
	s := &models.Subject{Name: "Physics " + uuid.NewString()}
	require.NoError(t, f.store.Subjects().Create(f.ctx, s))
	return s
}

func (f *fixture) connect(t *testing.T, teacherID, studentID uuid.UUID) {
	t.Helper()
	accepted := f.clock.Now()
	require.NoError(t, f.store.Relationships().Create(f.ctx, &models.TeacherStudent{
		TeacherID:   teacherID,
		StudentID:   studentID,
		Status:      models.RequestAccepted,
		RequestedAt: accepted,
		AcceptedAt:  &accepted,
	}))
}

// lesson stores a lesson directly, bypassing CreateLesson's checks.
func (f *fixture) lesson(t *testing.T, teacherID, studentID uuid.UUID, start, end time.Time, status models.LessonStatus) *models.Lesson {
	t.Helper()
	l := &models.Lesson{
		TeacherID: teacherID,
		StudentID: &studentID,
		SubjectID: uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	require.NoError(t, f.store.Lessons().Create(f.ctx, l))
	return l
}

func (f *fixture) storedStatus(t *testing.T, id uuid.UUID) models.LessonStatus {
	t.Helper()
	l, err := f.store.Lessons().Get(f.ctx, id)
	require.NoError(t, err)
	return l.Status
}
