package services

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStorage uploads attachment bytes to external storage and returns a URL.
type FileStorage interface {
	Upload(ctx context.Context, lessonID uuid.UUID, fileName string, content []byte) (string, error)
}

type AttachmentService struct {
	store   Store
	storage FileStorage
	clock   Clock
	log     *zap.Logger
}

// NewAttachmentService stores attachments inline as base64 when storage is nil.
func NewAttachmentService(store Store, storage FileStorage, clock Clock, log *zap.Logger) *AttachmentService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AttachmentService{store: store, storage: storage, clock: clock, log: log.Named("attachments")}
}

type UploadAttachmentInput struct {
	LessonID      uuid.UUID
	UploaderID    uuid.UUID
	FileName      string
	FileType      string
	Base64Content string
}

func (s *AttachmentService) Upload(ctx context.Context, in UploadAttachmentInput) (*models.Attachment, error) {
	lesson, err := s.store.Lessons().Get(ctx, in.LessonID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !lesson.HasParticipant(in.UploaderID) {
		return nil, ErrLessonNotFound
	}

	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		return nil, newError(CodeInvalidInput, "file name is required")
	}
	content, err := DecodeBase64Payload(in.Base64Content)
	if err != nil {
		return nil, newError(CodeInvalidInput, "file content is not valid base64")
	}

	attachment := &models.Attachment{
		LessonID:   in.LessonID,
		UploadedBy: in.UploaderID,
		FileName:   fileName,
		FileType:   in.FileType,
		SizeKB:     int64(len(content)) / 1024,
		UploadedAt: s.clock.Now(),
	}
	if s.storage != nil {
		url, err := s.storage.Upload(ctx, in.LessonID, fileName, content)
		if err != nil {
			s.log.Error("attachment upload failed", zap.String("lesson_id", in.LessonID.String()), zap.Error(err))
			return nil, storageFailure(err)
		}
		attachment.FileURL = &url
	} else {
		inline := in.Base64Content
		attachment.Base64Content = &inline
	}

	if err := s.store.Attachments().Create(ctx, attachment); err != nil {
		return nil, storageFailure(err)
	}
	s.log.Info("attachment uploaded",
		zap.String("lesson_id", in.LessonID.String()),
		zap.String("attachment_id", attachment.ID.String()),
		zap.Int64("size_kb", attachment.SizeKB))
	return attachment, nil
}

// List returns a lesson's attachments if userID takes part in the lesson.
func (s *AttachmentService) List(ctx context.Context, lessonID, userID uuid.UUID) ([]models.Attachment, error) {
	lesson, err := s.store.Lessons().Get(ctx, lessonID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !lesson.HasParticipant(userID) {
		return nil, ErrLessonNotFound
	}
	attachments, err := s.store.Attachments().ListByLesson(ctx, lessonID)
	return attachments, storageFailure(err)
}

// DecodeBase64Payload accepts raw base64 or a data URL ("data:...;base64,XXXX").
func DecodeBase64Payload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}
	if payload == "" {
		return nil, base64.CorruptInputError(0)
	}
	return base64.StdEncoding.DecodeString(payload)
}
