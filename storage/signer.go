package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrSignatureExpired = errors.New("signed url expired")
	ErrSignatureInvalid = errors.New("invalid signature")
)

// URLSigner mints and verifies expiring signatures over request paths, the
// pre-signed-URL contract the document endpoints expose.
type URLSigner struct {
	secret []byte
}

func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

// Sign returns a signed URL for the given path, valid for ttl.
func (s *URLSigner) Sign(path string, ttl time.Duration) string {
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("%s?expires=%d&sig=%s", path, expires, s.signature(path, expires))
}

// Verify checks the signature and expiry for a path previously passed to Sign.
func (s *URLSigner) Verify(path string, expiresStr, sig string) error {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}
	if time.Now().Unix() > expires {
		return ErrSignatureExpired
	}
	expected := s.signature(path, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrSignatureInvalid
	}
	return nil
}

func (s *URLSigner) signature(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
