package storage

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const signedURLTTL = 5 * time.Minute

// Signer issues short-lived signed object URLs the way the storage gateway
// expects them: an HS256 token over the object path, appended to
// /object/sign/<bucket>/<path>.
type Signer struct {
	baseURL string
	bucket  string
	secret  []byte
	now     func() time.Time
}

func NewSigner(baseURL, bucket string, secret []byte) *Signer {
	return &Signer{
		baseURL: baseURL,
		bucket:  bucket,
		secret:  secret,
		now:     time.Now,
	}
}

func (s *Signer) SignedURL(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty object path")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret not configured")
	}

	now := s.now().UTC()
	claims := jwt.MapClaims{
		"url": s.bucket + "/" + path,
		"iat": now.Unix(),
		"exp": now.Add(signedURLTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign object url: %w", err)
	}

	return fmt.Sprintf("%s/object/sign/%s/%s?token=%s", s.baseURL, s.bucket, path, token), nil
}
