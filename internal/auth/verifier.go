// Package auth verifies identity-provider ID tokens and syncs admin users.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talent-search/internal/apperr"
)

const issuerPrefix = "https://securetoken.google.com/"

// Identity is what a verified token says about its subject.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Picture *string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type Verifier struct {
	keys      KeySource
	projectID string
	now       func() time.Time
}

func NewVerifier(keys KeySource, projectID string) *Verifier {
	return &Verifier{keys: keys, projectID: projectID, now: time.Now}
}

// Verify checks signature, issuer, audience and expiry.
func (v *Verifier) Verify(ctx context.Context, token string) (Identity, error) {
	if v.projectID == "" {
		return Identity{}, apperr.Unavailable("identity verification is not configured", nil)
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("token has no key id")
			}
			return v.keys.PublicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, apperr.Unauthorized("Invalid identity token", err)
	}
	if c.Subject == "" {
		return Identity{}, apperr.Unauthorized("Invalid identity token", fmt.Errorf("token has no subject"))
	}

	id := Identity{Subject: c.Subject, Name: c.Name, Email: c.Email}
	if c.Picture != "" {
		pic := c.Picture
		id.Picture = &pic
	}
	return id, nil
}
