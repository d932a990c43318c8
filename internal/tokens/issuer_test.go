package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(at time.Time) *Issuer {
	return &Issuer{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		Lifetimes:     DefaultLifetimes(),
		Now:           func() time.Time { return at },
	}
}

func TestIssuer_Issue_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	// parsing validates exp against the real clock, so the issuance
	// fixture must not be a fixed past date
	now := time.Now().UTC().Truncate(time.Second)
	issuer := newTestIssuer(now)

	pair, err := issuer.Issue("42", false)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := AccessClaimsFromToken(pair.AccessToken, issuer.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", access.Subject)
	require.NotNil(t, access.ExpiresAt)
	assert.WithinDuration(t, now.Add(time.Hour), access.ExpiresAt.Time, time.Second)

	refresh, err := RefreshClaimsFromToken(pair.RefreshToken, issuer.RefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", refresh.Subject)
	assert.Equal(t, "refresh", refresh.Typ)
	assert.NotEmpty(t, refresh.ID)
	require.NotNil(t, refresh.ExpiresAt)
	assert.WithinDuration(t, now.Add(24*time.Hour), refresh.ExpiresAt.Time, time.Second)
}

func TestIssuer_Issue_RememberLengthensBothLifetimes(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(now)

	pair, err := issuer.Issue("42", true)
	require.NoError(t, err)

	assert.WithinDuration(t, now.Add(7*24*time.Hour), pair.AccessExp, time.Second)
	assert.WithinDuration(t, now.Add(30*24*time.Hour), pair.RefreshExp, time.Second)
}

func TestIssuer_Issue_UniqueJTIs(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Now().UTC().Truncate(time.Second))

	first, err := issuer.Issue("42", false)
	require.NoError(t, err)
	second, err := issuer.Issue("42", false)
	require.NoError(t, err)

	a, err := RefreshClaimsFromToken(first.RefreshToken, issuer.RefreshSecret)
	require.NoError(t, err)
	b, err := RefreshClaimsFromToken(second.RefreshToken, issuer.RefreshSecret)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAccessClaimsFromToken_ExpiredVsMalformed(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-2 * time.Hour)
	issuer := newTestIssuer(past)

	pair, err := issuer.Issue("42", false)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(pair.AccessToken, issuer.AccessSecret)
	assert.ErrorIs(t, err, ErrExpired)

	_, err = AccessClaimsFromToken("not-a-jwt", issuer.AccessSecret)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = AccessClaimsFromToken(pair.AccessToken, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRefreshClaimsFromToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Now())
	pair, err := issuer.Issue("42", false)
	require.NoError(t, err)

	// an access token signed with the refresh secret still lacks typ
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(issuer.RefreshSecret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(signed, issuer.RefreshSecret)
	assert.ErrorIs(t, err, ErrMalformed)

	// and a real refresh token never parses as access
	_, err = AccessClaimsFromToken(pair.RefreshToken, issuer.AccessSecret)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSha256Hex_StableAndDistinct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Sha256Hex("token-a"), Sha256Hex("token-a"))
	assert.NotEqual(t, Sha256Hex("token-a"), Sha256Hex("token-b"))
	assert.Len(t, Sha256Hex("token-a"), 64)
}
