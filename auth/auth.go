// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid viewer token")
	ErrInvalidTier  = errors.New("invalid tier")
)

// Tier is a viewer's subscription level
type Tier string

const (
	TierAnonymous Tier = "anonymous"
	TierFree      Tier = "free"
	TierPro       Tier = "pro"
)

// ParseTier accepts the names of the signed-in tiers
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierPro:
		return Tier(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// MaxPageSize caps the limit query parameter for list endpoints
func (t Tier) MaxPageSize() int {
	switch t {
	case TierPro:
		return 100
	case TierFree:
		return 50
	}
	return 20
}

// ComplaintLimit is the number of complaints shown on a brief; 0 means all
func (t Tier) ComplaintLimit() int {
	if t == TierPro {
		return 0
	}
	return 3
}

// Viewer identifies who is making a request
type Viewer struct {
	UserID string
	Tier   Tier
}

// Anonymous is the viewer for requests without a token
var Anonymous = Viewer{Tier: TierAnonymous}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == "" || v.Tier == TierAnonymous
}

// IssueViewerToken signs user_id|tier with HMAC-SHA256.
// Tokens look like base64url(payload) "." base64url(mac).
func IssueViewerToken(userID string, tier Tier, secret string) (string, error) {
	if userID == "" || strings.Contains(userID, "|") {
		return "", fmt.Errorf("%w: bad user id", ErrInvalidToken)
	}
	if _, err := ParseTier(string(tier)); err != nil {
		return "", err
	}

	payload := userID + "|" + string(tier)
	return encode([]byte(payload)) + "." + encode(sign(payload, secret)), nil
}

// ParseViewerToken verifies the signature and returns the viewer
func ParseViewerToken(token, secret string) (Viewer, error) {
	payloadPart, macPart, ok := strings.Cut(token, ".")
	if !ok {
		return Viewer{}, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return Viewer{}, ErrInvalidToken
	}
	mac, err := base64.RawURLEncoding.DecodeString(macPart)
	if err != nil {
		return Viewer{}, ErrInvalidToken
	}

	if !hmac.Equal(mac, sign(string(payload), secret)) {
		return Viewer{}, ErrInvalidToken
	}

	userID, tierName, ok := strings.Cut(string(payload), "|")
	if !ok || userID == "" {
		return Viewer{}, ErrInvalidToken
	}
	tier, err := ParseTier(tierName)
	if err != nil {
		return Viewer{}, ErrInvalidToken
	}

	return Viewer{UserID: userID, Tier: tier}, nil
}

func sign(payload, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return h.Sum(nil)
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// NewID returns a random UUID string for database records
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed UUID
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
