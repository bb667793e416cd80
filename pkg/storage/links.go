package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrLinkInvalid = errors.New("invalid download link")
	ErrLinkExpired = errors.New("download link expired")
)

// LinkSigner issues and checks HMAC-signed download tokens. A token names the
// owner it was issued to and the stored path it unlocks.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLinkSigner constructs a signer. Tokens stay valid for ttl.
func NewLinkSigner(secret string, ttl time.Duration) *LinkSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LinkSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns how long issued tokens stay valid.
func (s *LinkSigner) TTL() time.Duration { return s.ttl }

// Sign returns a token for relPath and when it expires.
func (s *LinkSigner) Sign(owner, relPath string) (string, time.Time, error) {
	if owner == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("owner and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	token := strings.Join([]string{owner, ts, encodedPath, s.mac(owner, ts, encodedPath)}, ".")
	return token, expiresAt, nil
}

// Verify checks a token's signature and expiry and returns what it names.
func (s *LinkSigner) Verify(token string) (owner, relPath string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || len(s.secret) == 0 {
		return "", "", time.Time{}, ErrLinkInvalid
	}
	owner, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.mac(owner, ts, encodedPath)), []byte(signature)) {
		return "", "", time.Time{}, ErrLinkInvalid
	}
	exp, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", "", time.Time{}, ErrLinkInvalid
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", time.Time{}, ErrLinkInvalid
	}
	expiresAt = time.Unix(exp, 0)
	if s.now().After(expiresAt) {
		return "", "", time.Time{}, ErrLinkExpired
	}
	return owner, string(rawPath), expiresAt, nil
}

func (s *LinkSigner) mac(owner, ts, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(owner + "|" + ts + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}
