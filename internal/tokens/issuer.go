package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetimes holds the token TTL policy. Refresh lifetimes are explicit
// configuration rather than hardcoded so the policy can be swapped
// without touching issuance code.
type Lifetimes struct {
	Access         time.Duration
	AccessRemember time.Duration

	Refresh         time.Duration
	RefreshRemember time.Duration
}

func DefaultLifetimes() Lifetimes {
	return Lifetimes{
		Access:          time.Hour,
		AccessRemember:  7 * 24 * time.Hour,
		Refresh:         24 * time.Hour,
		RefreshRemember: 30 * 24 * time.Hour,
	}
}

type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

type Issuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Lifetimes     Lifetimes

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

// Issue signs a fresh access/refresh pair for the subject. Remember
// mode lengthens both lifetimes independently.
func (i *Issuer) Issue(subject string, remember bool) (*Pair, error) {
	now := i.now()

	accessTTL, refreshTTL := i.Lifetimes.Access, i.Lifetimes.Refresh
	if remember {
		accessTTL, refreshTTL = i.Lifetimes.AccessRemember, i.Lifetimes.RefreshRemember
	}

	accessExp := now.Add(accessTTL)
	accessClaims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(i.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshExp := now.Add(refreshTTL)
	refreshClaims := RefreshClaims{
		Typ: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        NewJTI(),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(i.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
