// Package backup uploads a snapshot of a project's binder files to S3 or an
// S3-compatible store.
package backup

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/logger"
)

const (
	EnvAccessKeyID     = "QUIRE_S3_ACCESS_KEY_ID"
	EnvSecretAccessKey = "QUIRE_S3_SECRET_ACCESS_KEY"
	EnvSessionToken    = "QUIRE_S3_SESSION_TOKEN"

	TimestampLayout = "20060102T150405Z"
)

var ErrNotConfigured = errors.New("backup: no bucket configured for this project")

// Uploader is the part of manager.Uploader a backup needs.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type Backup struct {
	project  string
	cfg      config.BackupConfig
	uploader Uploader
	log      *logrus.Logger
	now      func() time.Time
}

type Option func(*Backup)

// WithUploader replaces the S3 uploader, skipping AWS configuration entirely.
func WithUploader(u Uploader) Option {
	return func(b *Backup) { b.uploader = u }
}

func WithLogger(l *logrus.Logger) Option {
	return func(b *Backup) {
		if l != nil {
			b.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Backup) { b.now = now }
}

// Result describes a finished backup.
type Result struct {
	Bucket string
	Prefix string
	Keys   []string
}

func New(ctx context.Context, project string, cfg config.BackupConfig, opts ...Option) (*Backup, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNotConfigured
	}

	b := &Backup{
		project: project,
		cfg:     cfg,
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.uploader == nil {
		client, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.uploader = manager.NewUploader(client)
	}

	return b, nil
}

func newClient(ctx context.Context, cfg config.BackupConfig) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if provider, ok := envCredentials(); ok {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(provider))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// envCredentials reads static keys from the environment so a backup bucket
// can use credentials separate from the default AWS chain.
func envCredentials() (aws.CredentialsProvider, bool) {
	id := strings.TrimSpace(os.Getenv(EnvAccessKeyID))
	secret := strings.TrimSpace(os.Getenv(EnvSecretAccessKey))
	if id == "" || secret == "" {
		return nil, false
	}
	return credentials.NewStaticCredentialsProvider(id, secret, os.Getenv(EnvSessionToken)), true
}

// Prefix is the key prefix for a snapshot taken at t.
func Prefix(prefix, project string, t time.Time) string {
	return path.Join(strings.Trim(prefix, "/"), project, t.UTC().Format(TimestampLayout))
}

// Run uploads every file the binder reads. It stops at the first failed
// upload; files already uploaded stay in the bucket.
func (b *Backup) Run(ctx context.Context, bnd *binder.Binder) (Result, error) {
	res := Result{
		Bucket: b.cfg.Bucket,
		Prefix: Prefix(b.cfg.Prefix, b.project, b.now()),
	}

	for _, rel := range bnd.Files() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key := path.Join(res.Prefix, rel)
		if err := b.upload(ctx, filepath.Join(bnd.Dir(), filepath.FromSlash(rel)), key); err != nil {
			b.log.WithError(err).WithField("key", key).Error("backup upload failed")
			return res, fmt.Errorf("failed to upload %s: %w", rel, err)
		}
		res.Keys = append(res.Keys, key)
	}

	b.log.WithFields(logrus.Fields{
		"bucket": res.Bucket,
		"prefix": res.Prefix,
		"files":  len(res.Keys),
	}).Info("backup complete")

	return res, nil
}

func (b *Backup) upload(ctx context.Context, src, key string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(src)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	_, err = b.uploader.Upload(ctx, input)
	return err
}
