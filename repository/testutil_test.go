package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/database"
	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var errMissingDSN = errors.New("missing TEST_DATABASE_URL")

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
)

func openDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_DATABASE_URL")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}
		testDB, dbErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if dbErr != nil {
			return
		}
		dbErr = database.Migrate(testDB)
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_DATABASE_URL to run repository integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

// beginTx returns a transaction that is rolled back when the test ends.
func beginTx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func seedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, role models.Role) *models.User {
	tb.Helper()
	u := &models.User{
		FullName: string(role) + " user",
		Email:    uuid.NewString() + "@example.com",
		Password: "pw",
		Role:     role,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *models.TeacherProfile {
	tb.Helper()
	p := &models.TeacherProfile{UserID: userID, Education: "MSc Mathematics", ExperienceYears: 5, HourlyRate: 20}
	if err := tx.WithContext(ctx).Omit("User").Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func seedSubject(tb testing.TB, ctx context.Context, tx *gorm.DB) *models.Subject {
	tb.Helper()
	s := &models.Subject{Name: "Algebra " + uuid.NewString()}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

func seedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, teacherID, studentID, subjectID uuid.UUID, start time.Time, status models.LessonStatus) *models.Lesson {
	tb.Helper()
	l := &models.Lesson{
		TeacherID: teacherID,
		StudentID: &studentID,
		SubjectID: subjectID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	}
	if err := tx.WithContext(ctx).Omit("Attachments").Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}
