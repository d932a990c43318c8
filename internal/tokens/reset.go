package tokens

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// ResetTokenTTL is the validity window counted from the timestamp
// embedded in the token itself.
const ResetTokenTTL = time.Hour

// ResetCodec encodes a (subject, issue time) pair into an opaque
// URL-safe token. The token is self-describing; validity is computed
// from the embedded timestamp alone.
type ResetCodec struct {
	Now func() time.Time
}

func (c *ResetCodec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *ResetCodec) Issue(subject string) string {
	raw := subject + ":" + strconv.FormatInt(c.now().Unix(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Expiry returns the storage-side expiry instant for a token issued at
// the codec's current time, keeping both validity checks on one clock.
func (c *ResetCodec) Expiry() int64 {
	return c.now().Add(ResetTokenTTL).Unix()
}

// Verify decodes a reset token. Any structural failure (bad base64,
// missing separator, non-numeric timestamp) yields ("", false). On a
// clean decode the subject is returned even when the window has passed,
// so callers can tell an expired token from garbage input.
func (c *ResetCodec) Verify(token string) (string, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}
	sep := strings.LastIndexByte(string(raw), ':')
	if sep < 0 {
		return "", false
	}
	subject, tsPart := string(raw[:sep]), string(raw[sep+1:])
	issued, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return "", false
	}
	// A future timestamp can only come from tampering (an appended
	// base64 char can decode to an extra trailing digit), so age must
	// be non-negative.
	age := c.now().Unix() - issued
	return subject, age >= 0 && age <= int64(ResetTokenTTL.Seconds())
}
