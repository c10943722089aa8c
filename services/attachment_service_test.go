package services_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStorage struct {
	uploaded map[string][]byte
}

func (s *fakeStorage) Upload(_ context.Context, lessonID uuid.UUID, fileName string, content []byte) (string, error) {
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[fileName] = content
	return "https://files.example.com/" + lessonID.String() + "/" + fileName, nil
}

func TestDecodeBase64Payload(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("hello"))

	got, err := services.DecodeBase64Payload(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = services.DecodeBase64Payload("data:text/plain;base64," + raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = services.DecodeBase64Payload("data:text/plain;base64,")
	assert.Error(t, err)

	_, err = services.DecodeBase64Payload("not base64!")
	assert.Error(t, err)
}

func TestUploadAttachmentInline(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(time.Hour), epoch.Add(2*time.Hour), models.LessonScheduled)
	content := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 4096)))

	a, err := f.attachments.Upload(f.ctx, services.UploadAttachmentInput{
		LessonID: l.ID, UploaderID: student.ID, FileName: " notes.txt ", FileType: "text/plain", Base64Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", a.FileName)
	assert.EqualValues(t, 4, a.SizeKB)
	require.NotNil(t, a.Base64Content)
	assert.Nil(t, a.FileURL)

	listed, err := f.attachments.List(f.ctx, l.ID, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = f.attachments.List(f.ctx, l.ID, uuid.New())
	assert.ErrorIs(t, err, services.ErrLessonNotFound)
}

func TestUploadAttachmentToStorage(t *testing.T) {
	f := newFixture(t)
	storage := &fakeStorage{}
	attachments := services.NewAttachmentService(f.store, storage, f.clock, zap.NewNop())
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(time.Hour), epoch.Add(2*time.Hour), models.LessonScheduled)

	a, err := attachments.Upload(f.ctx, services.UploadAttachmentInput{
		LessonID: l.ID, UploaderID: teacher.ID, FileName: "slides.pdf", FileType: "application/pdf",
		Base64Content: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.NoError(t, err)
	require.NotNil(t, a.FileURL)
	assert.Contains(t, *a.FileURL, "slides.pdf")
	assert.Nil(t, a.Base64Content)
	assert.Equal(t, "%PDF-1.4", string(storage.uploaded["slides.pdf"]))
}

func TestUploadAttachmentRejections(t *testing.T) {
	f := newFixture(t)
	teacher, student := f.teacher(t), f.student(t)
	l := f.lesson(t, teacher.ID, student.ID, epoch.Add(time.Hour), epoch.Add(2*time.Hour), models.LessonScheduled)
	content := base64.StdEncoding.EncodeToString([]byte("abc"))

	_, err := f.attachments.Upload(f.ctx, services.UploadAttachmentInput{LessonID: l.ID, UploaderID: uuid.New(), FileName: "a.txt", Base64Content: content})
	assert.ErrorIs(t, err, services.ErrLessonNotFound)

	_, err = f.attachments.Upload(f.ctx, services.UploadAttachmentInput{LessonID: l.ID, UploaderID: student.ID, FileName: "  ", Base64Content: content})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = f.attachments.Upload(f.ctx, services.UploadAttachmentInput{LessonID: l.ID, UploaderID: student.ID, FileName: "a.txt", Base64Content: "%%%"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
