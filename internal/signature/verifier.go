// Package signature checks the v0 request signature the chat platform attaches
// to every webhook call.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	// HeaderTimestamp carries the unix timestamp the request was signed at.
	HeaderTimestamp = "X-Slack-Request-Timestamp"
	// HeaderSignature carries the "v0=<hex>" signature.
	HeaderSignature = "X-Slack-Signature"

	// DefaultMaxSkew is the replay window.
	DefaultMaxSkew = 5 * time.Minute

	version = "v0"
)

var (
	ErrMissingSecret      = errors.New("signature: signing secret is empty")
	ErrMalformedTimestamp = errors.New("signature: malformed timestamp")
	ErrExpiredTimestamp   = errors.New("signature: timestamp outside replay window")
	ErrInvalidSignature   = errors.New("signature: invalid signature")
)

// Verifier validates signed request bodies against a shared secret.
type Verifier struct {
	secret  []byte
	maxSkew time.Duration
	now     func() time.Time
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// WithMaxSkew overrides the replay window.
func WithMaxSkew(d time.Duration) Option {
	return func(v *Verifier) { v.maxSkew = d }
}

func NewVerifier(secret string, opts ...Option) *Verifier {
	v := &Verifier{
		secret:  []byte(secret),
		maxSkew: DefaultMaxSkew,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns nil when signature matches body signed at timestamp.
func (v *Verifier) Verify(body []byte, timestamp, signature string) error {
	if len(v.secret) == 0 {
		return ErrMissingSecret
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return ErrMalformedTimestamp
	}
	// Whole seconds in int64; time.Duration overflows for far-off timestamps.
	now, window := v.now().Unix(), int64(v.maxSkew/time.Second)
	if ts < now-window || ts > now+window {
		return ErrExpiredTimestamp
	}
	expected := v.Sign(body, timestamp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the signature header value for body at timestamp.
func (v *Verifier) Sign(body []byte, timestamp string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(version + ":" + timestamp + ":"))
	mac.Write(body)
	return version + "=" + hex.EncodeToString(mac.Sum(nil))
}
