// Package uploads stores lesson attachments in Cloudinary.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadTimeout = 30 * time.Second

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *zap.Logger
}

var _ services.FileStorage = (*CloudinaryStorage)(nil)

func NewCloudinaryStorage(cloudinaryURL, folder string, log *zap.Logger) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: folder, log: log.Named("cloudinary")}, nil
}

// publicID groups a lesson's files and keeps the original extension off the
// id; Cloudinary appends it to the delivery URL.
func publicID(lessonID uuid.UUID, fileName string) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	base = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, base)
	return fmt.Sprintf("%s/%s_%s", lessonID, base, uuid.NewString()[:8])
}

func (s *CloudinaryStorage) Upload(ctx context.Context, lessonID uuid.UUID, fileName string, content []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID:     publicID(lessonID, fileName),
		Folder:       s.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}

	s.log.Debug("file uploaded", zap.String("public_id", result.PublicID), zap.Int("bytes", result.Bytes))
	return result.SecureURL, nil
}

type Signature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// Sign returns the parameters a browser needs to upload directly to the
// configured folder.
func (s *CloudinaryStorage) Sign(now time.Time) (*Signature, error) {
	params, err := api.StructToParams(uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return nil, fmt.Errorf("prepare signature params: %w", err)
	}

	timestamp := now.Unix()
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(params, s.cld.Config.Cloud.APISecret)
	if err != nil {
		return nil, fmt.Errorf("sign upload params: %w", err)
	}

	return &Signature{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    s.cld.Config.Cloud.APIKey,
		CloudName: s.cld.Config.Cloud.CloudName,
		Folder:    s.folder,
	}, nil
}
