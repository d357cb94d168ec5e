package services

import (
	"context"
	"fmt"
	"time"

	"aichat-server/internal/storage"

	"github.com/google/uuid"
)

// UploadService issues short-lived signed parameters authorizing a
// direct client upload to the media store. Pure delegation: no
// sessions, no caching, no rate limiting.
type UploadService struct {
	storage *storage.Client
}

func NewUploadService(st *storage.Client) *UploadService {
	return &UploadService{storage: st}
}

type UploadCredentials struct {
	URL       string            `json:"url"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers,omitempty"`
	FileURL   string            `json:"fileUrl,omitempty"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Credentials signs an upload slot under the owner's prefix. The
// object key is generated here so clients cannot choose where in the
// bucket they write.
func (s *UploadService) Credentials(ctx context.Context, ownerID, contentType string, sizeBytes int64) (UploadCredentials, error) {
	key := fmt.Sprintf("uploads/%s/%s", ownerID, uuid.NewString())

	url, headers, err := s.storage.PresignPut(ctx, key, contentType, sizeBytes)
	if err != nil {
		return UploadCredentials{}, err
	}

	return UploadCredentials{
		URL:       url,
		Key:       key,
		Headers:   headers,
		FileURL:   s.storage.FileURL(key),
		ExpiresAt: time.Now().Add(s.storage.TTL()),
	}, nil
}
