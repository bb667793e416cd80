package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wazai-maps/internal/dto"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/storage"
)

type fileStore interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Sweep(ttl time.Duration) ([]string, error)
}

type linkSigner interface {
	Sign(owner, relPath string) (string, time.Time, error)
	Verify(token string) (string, string, time.Time, error)
	TTL() time.Duration
}

// SharedFile is an opened export ready to stream.
type SharedFile struct {
	Filename    string
	ContentType string
	File        *os.File
}

// ShareService stores rendered exports and hands out signed download links.
type ShareService struct {
	store      fileStore
	signer     linkSigner
	linkPrefix string
	logger     *zap.Logger
}

// NewShareService constructs a ShareService. linkPrefix is prepended to the
// token to form the download URL.
func NewShareService(store fileStore, signer linkSigner, linkPrefix string, logger *zap.Logger) *ShareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareService{store: store, signer: signer, linkPrefix: linkPrefix, logger: logger}
}

// Publish stores file for owner and returns its download link.
func (s *ShareService) Publish(owner string, file dto.ExportFile) (*dto.ExportLink, error) {
	rel, err := s.store.Save(path.Join(owner, file.Filename), file.Body)
	if err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}
	token, expiresAt, err := s.signer.Sign(owner, rel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "export links are disabled")
	}
	s.logger.Info("export published", zap.String("session_id", owner), zap.String("path", rel))
	return &dto.ExportLink{URL: s.linkPrefix + token, Filename: file.Filename, ExpiresAt: expiresAt}, nil
}

// Open resolves a download token. Bad or expired tokens read as not found.
func (s *ShareService) Open(token string) (*SharedFile, error) {
	_, rel, _, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrLinkExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download link not found")
	}
	f, err := s.store.Open(rel)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	name := path.Base(rel)
	return &SharedFile{Filename: name, ContentType: contentTypeFor(name), File: f}, nil
}

// Sweep deletes stored exports older than the link lifetime.
func (s *ShareService) Sweep() int {
	removed, err := s.store.Sweep(s.signer.TTL())
	if err != nil {
		s.logger.Warn("export sweep failed", zap.Error(err))
	}
	return len(removed)
}

// RunJanitor calls Sweep every interval until ctx is done.
func (s *ShareService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired exports removed", zap.Int("count", n))
			}
		}
	}
}
