package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"health_edu_backend/internal/config"
	"health_edu_backend/internal/model"
	"health_edu_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ResetSnapshot is the pre-reset state kept for support and recovery.
type ResetSnapshot struct {
	Scope      string                 `json:"scope"`
	Mode       string                 `json:"mode"`
	TakenAt    time.Time              `json:"takenAt"`
	User       *model.User            `json:"user"`
	Challenges []*model.UserChallenge `json:"challenges"`
}

// Archiver stores reset snapshots. Archive returns the object key.
type Archiver interface {
	Archive(ctx context.Context, snapshot *ResetSnapshot) (string, error)
}

func snapshotKey(s *ResetSnapshot) string {
	return fmt.Sprintf("resets/%s/%s.json", s.Scope, s.TakenAt.UTC().Format("20060102T150405.000Z"))
}

// NopArchiver is used when no object storage is configured.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, *ResetSnapshot) (string, error) {
	return "", nil
}

// MinioArchiver MinIO 快照存储
type MinioArchiver struct {
	Config *config.ArchiveConfig
	Client *minio.Client
}

func NewMinioArchiver(cfg *config.ArchiveConfig) (*MinioArchiver, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiver{Config: cfg, Client: client}, nil
}

// EnsureBucket creates the bucket on first start.
func (a *MinioArchiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.Client.BucketExists(ctx, a.Config.MinioBucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return a.Client.MakeBucket(ctx, a.Config.MinioBucket, minio.MakeBucketOptions{})
}

func (a *MinioArchiver) Archive(ctx context.Context, snapshot *ResetSnapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	key := snapshotKey(snapshot)
	_, err = a.Client.PutObject(ctx, a.Config.MinioBucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// NewArchiver 根据配置选择快照存储
func NewArchiver(cfg *config.ArchiveConfig) Archiver {
	if cfg.MinioEndpoint == "" {
		return NopArchiver{}
	}
	a, err := NewMinioArchiver(cfg)
	if err != nil {
		logger.Log.Warn("reset archive disabled", zap.Error(err))
		return NopArchiver{}
	}
	if err := a.EnsureBucket(context.Background()); err != nil {
		logger.Log.Warn("reset archive bucket unavailable", zap.String("bucket", cfg.MinioBucket), zap.Error(err))
	}
	return a
}
