package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talent-search/internal/apperr"
	httpclient "talent-search/pkg/http"
)

const testProject = "talent-test"

type staticKeys map[string]*rsa.PublicKey

func (s staticKeys) PublicKey(_ context.Context, kid string) (*rsa.PublicKey, error) {
	k, ok := s[kid]
	if !ok {
		return nil, fmt.Errorf("unknown kid %s", kid)
	}
	return k, nil
}

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	c := jwt.MapClaims{
		"iss":     issuerPrefix + testProject,
		"aud":     testProject,
		"sub":     "uid-123",
		"iat":     now.Add(-time.Minute).Unix(),
		"exp":     now.Add(time.Hour).Unix(),
		"name":    "Ada Admin",
		"email":   "ada@example.com",
		"picture": "https://example.com/ada.png",
	}
	if mutate != nil {
		mutate(c)
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, c)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func TestVerify(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := NewVerifier(staticKeys{"k1": &key.PublicKey}, testProject)

	id, err := v.Verify(context.Background(), sign(t, key, "k1", nil))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.Subject != "uid-123" || id.Email != "ada@example.com" || id.Picture == nil {
		t.Errorf("Unexpected identity: %+v", id)
	}

	bad := map[string]string{
		"wrong issuer":   sign(t, key, "k1", func(c jwt.MapClaims) { c["iss"] = "https://evil.example" }),
		"wrong audience": sign(t, key, "k1", func(c jwt.MapClaims) { c["aud"] = "other-project" }),
		"expired":        sign(t, key, "k1", func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }),
		"no subject":     sign(t, key, "k1", func(c jwt.MapClaims) { delete(c, "sub") }),
		"unknown kid":    sign(t, key, "k9", nil),
		"wrong key":      sign(t, other, "k1", nil),
		"garbage":        "not.a.token",
	}
	for name, token := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			if !apperr.Is(err, apperr.ErrTypeUnauthorized) {
				t.Errorf("Expected unauthorized, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsHS256(t *testing.T) {
	key := newKey(t)
	v := NewVerifier(staticKeys{"k1": &key.PublicKey}, testProject)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": issuerPrefix + testProject, "aud": testProject, "sub": "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = "k1"
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	if _, err := v.Verify(context.Background(), s); !apperr.Is(err, apperr.ErrTypeUnauthorized) {
		t.Errorf("Expected unauthorized, got %v", err)
	}
}

func TestVerifyUnconfigured(t *testing.T) {
	v := NewVerifier(staticKeys{}, "")
	if _, err := v.Verify(context.Background(), "x"); !apperr.Is(err, apperr.ErrTypeUnavailable) {
		t.Errorf("Expected unavailable, got %v", err)
	}
}

func selfSignedPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate failed: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func TestCertSourceCaching(t *testing.T) {
	key := newKey(t)
	certs := map[string]string{"k1": selfSignedPEM(t, key)}

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Cache-Control", "public, max-age=600, must-revalidate")
		_ = json.NewEncoder(w).Encode(certs)
	}))
	defer srv.Close()

	src := NewCertSource(srv.URL, httpclient.NewClient(5*time.Second))
	now := time.Now()
	src.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := src.PublicKey(context.Background(), "k1"); err != nil {
			t.Fatalf("PublicKey failed: %v", err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected 1 fetch within max-age, got %d", got)
	}

	now = now.Add(11 * time.Minute)
	if _, err := src.PublicKey(context.Background(), "k1"); err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected refetch after expiry, got %d fetches", got)
	}

	if _, err := src.PublicKey(context.Background(), "missing"); err == nil {
		t.Error("Expected error for unknown kid")
	}

	v := NewVerifier(src, testProject)
	if _, err := v.Verify(context.Background(), sign(t, key, "k1", nil)); err != nil {
		t.Errorf("Verify with cert source failed: %v", err)
	}
}

func TestMaxAge(t *testing.T) {
	if got := maxAge("public, max-age=19845, must-revalidate"); got != 19845*time.Second {
		t.Errorf("maxAge = %v", got)
	}
	if got := maxAge("no-cache"); got != defaultKeyTTL {
		t.Errorf("maxAge default = %v", got)
	}
}
