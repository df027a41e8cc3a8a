package signature

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_754_000_000, 0)

func newTestVerifier(secret string) *Verifier {
	return NewVerifier(secret, WithClock(func() time.Time { return fixedNow }))
}

func TestVerify_RoundTrip(t *testing.T) {
	v := newTestVerifier("8f742231b10e8888abcd99yyyzzz85a5")
	body := []byte("token=xyz&user_id=U1&command=%2Ftimesheet")
	ts := strconv.FormatInt(fixedNow.Unix(), 10)

	sig := v.Sign(body, ts)
	assert.Regexp(t, `^v0=[0-9a-f]{64}$`, sig)
	require.NoError(t, v.Verify(body, ts, sig))
}

func TestVerify_KnownVector(t *testing.T) {
	// Example from the platform's request-signing documentation.
	body := []byte("token=xyzz0WbapA4vBCDEFasx0q6G&team_id=T1DC2JH3J&team_domain=testteamnow&channel_id=G8PSS9T3V&channel_name=foobar&user_id=U2CERLKJA&user_name=roadrunner&command=%2Fwebhook-collect&text=&response_url=https%3A%2F%2Fhooks.slack.com%2Fcommands%2FT1DC2JH3J%2F397700885554%2F96rGlfmibIGlgcZRskXaIFfN&trigger_id=398738663015.47445629121.803a0bc887a14d10d2c447fce8b6703c")
	v := NewVerifier("8f742231b10e8888abcd99yyyzzz85a5", WithClock(func() time.Time { return time.Unix(1531420618, 0) }))
	assert.NoError(t, v.Verify(body, "1531420618", "v0=a2114d57b48eac39b9ad189dd8316235a7b4a8d21a10bd27519666489c69b503"))
}

func TestVerify_Tampering(t *testing.T) {
	secret := "shhh"
	body := []byte(`payload={"type":"block_actions"}`)
	ts := strconv.FormatInt(fixedNow.Unix(), 10)
	sig := newTestVerifier(secret).Sign(body, ts)

	t.Run("body byte flipped", func(t *testing.T) {
		for i := range body {
			tampered := append([]byte(nil), body...)
			tampered[i] ^= 0x01
			assert.ErrorIs(t, newTestVerifier(secret).Verify(tampered, ts, sig), ErrInvalidSignature, "index %d", i)
		}
	})
	t.Run("secret byte flipped", func(t *testing.T) {
		for i := range secret {
			b := []byte(secret)
			b[i] ^= 0x01
			assert.ErrorIs(t, newTestVerifier(string(b)).Verify(body, ts, sig), ErrInvalidSignature, "index %d", i)
		}
	})
	t.Run("signature byte flipped", func(t *testing.T) {
		for i := range sig {
			b := []byte(sig)
			b[i] ^= 0x01
			assert.ErrorIs(t, newTestVerifier(secret).Verify(body, ts, string(b)), ErrInvalidSignature, "index %d", i)
		}
	})
}

func TestVerify_ReplayWindow(t *testing.T) {
	v := newTestVerifier("secret")
	body := []byte("a=b")
	tests := []struct {
		name    string
		offset  time.Duration
		wantErr error
	}{
		{"now", 0, nil},
		{"edge past", -300 * time.Second, nil},
		{"edge future", 300 * time.Second, nil},
		{"too old", -301 * time.Second, ErrExpiredTimestamp},
		{"too far ahead", 301 * time.Second, ErrExpiredTimestamp},
		{"an hour old", -time.Hour, ErrExpiredTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := strconv.FormatInt(fixedNow.Add(tt.offset).Unix(), 10)
			err := v.Verify(body, ts, v.Sign(body, ts))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_ReplayWindowExtremes(t *testing.T) {
	v := newTestVerifier("secret")
	body := []byte("a=b")
	for _, ts := range []string{
		"99999999999",
		"9223372036854775807",
		"1",
		"0",
		"-9223372036854775808",
	} {
		t.Run(ts, func(t *testing.T) {
			assert.ErrorIs(t, v.Verify(body, ts, v.Sign(body, ts)), ErrExpiredTimestamp)
		})
	}
}

func TestVerify_Malformed(t *testing.T) {
	v := newTestVerifier("secret")
	assert.ErrorIs(t, v.Verify([]byte("x"), "", "v0=00"), ErrMalformedTimestamp)
	assert.ErrorIs(t, v.Verify([]byte("x"), "12ab", "v0=00"), ErrMalformedTimestamp)

	ts := strconv.FormatInt(fixedNow.Unix(), 10)
	assert.ErrorIs(t, v.Verify([]byte("x"), ts, ""), ErrInvalidSignature)
	assert.ErrorIs(t, NewVerifier("").Verify([]byte("x"), ts, "v0=00"), ErrMissingSecret)
}
