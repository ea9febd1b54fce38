package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	httpclient "talent-search/pkg/http"
)

// KeySource resolves a signing key by key id.
type KeySource interface {
	PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

const defaultKeyTTL = time.Hour

// CertSource fetches the provider's x509 signing certificates, a JSON object
// of kid to PEM certificate, and caches them for the max-age the endpoint
// advertises.
type CertSource struct {
	url    string
	client *httpclient.Client
	now    func() time.Time

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func NewCertSource(url string, client *httpclient.Client) *CertSource {
	return &CertSource{
		url:    url,
		client: client,
		now:    time.Now,
	}
}

func (s *CertSource) PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keys == nil || s.now().After(s.expires) {
		if err := s.refresh(ctx); err != nil {
			return nil, err
		}
	}

	key, ok := s.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

// caller holds s.mu
func (s *CertSource) refresh(ctx context.Context) error {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return errors.Wrap(err, "fetching signing certificates")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signing certificates endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "reading signing certificates")
	}

	var pems map[string]string
	if err := json.Unmarshal(body, &pems); err != nil {
		return errors.Wrap(err, "decoding signing certificates")
	}

	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, pem := range pems {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return errors.Wrapf(err, "parsing certificate %s", kid)
		}
		keys[kid] = key
	}

	s.keys = keys
	s.expires = s.now().Add(maxAge(resp.Header.Get("Cache-Control")))
	return nil
}

func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if v, ok := strings.CutPrefix(directive, "max-age="); ok {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return defaultKeyTTL
}
