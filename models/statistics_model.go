package models

import "github.com/google/uuid"

// TeacherStatistics is a read model computed from lessons, reviews and
// connection requests. It is not persisted in the database.
type TeacherStatistics struct {
	TeacherID          uuid.UUID         `json:"teacher_id"`
	TotalStudents      int64             `json:"total_students"`
	TotalLessons       int               `json:"total_lessons"`
	CompletedLessons   int               `json:"completed_lessons"`
	UpcomingLessons    int               `json:"upcoming_lessons"`
	Rating             float64           `json:"rating"`
	ReviewsCount       int               `json:"reviews_count"`
	LessonsBySubject   map[uuid.UUID]int `json:"lessons_by_subject"`
	RatingDistribution map[int]int       `json:"rating_distribution"`
}

// StudentStatistics is computed from the student's lessons; like
// TeacherStatistics it is not persisted.
type StudentStatistics struct {
	StudentID        uuid.UUID         `json:"student_id"`
	TotalLessons     int               `json:"total_lessons"`
	CompletedLessons int               `json:"completed_lessons"`
	UpcomingLessons  int               `json:"upcoming_lessons"`
	TeachersCount    int               `json:"teachers_count"`
	LessonsBySubject map[uuid.UUID]int `json:"lessons_by_subject"`
	TotalHours       int               `json:"total_hours"`
}
