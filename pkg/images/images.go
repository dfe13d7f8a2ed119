package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/mvillegas/cabstock-backend/pkg/config"
)

var dataURIRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp);base64,`)

// URLProber checks that a remote image URL answers before it is persisted.
type URLProber interface {
	Probe(ctx context.Context, rawURL string) error
}

// Sanitizer normalizes the image field of inventory writes. Anything that is
// not a well-formed image data URI or an http(s) URL is replaced with the
// configured placeholder instead of being rejected.
type Sanitizer struct {
	placeholder string
	maxBytes    int
	prober      URLProber

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewSanitizer builds a sanitizer from the inventory config. Without a
// prober, http(s) URLs pass through unverified.
func NewSanitizer(cfg config.InventoryConfig) *Sanitizer {
	return &Sanitizer{
		placeholder: cfg.DefaultImageURL,
		maxBytes:    cfg.ImageMaxBytes,
	}
}

// WithProber enables liveness probing of remote image URLs.
func (s *Sanitizer) WithProber(p URLProber) *Sanitizer {
	s.prober = p
	return s
}

// Placeholder returns the substitute image reference.
func (s *Sanitizer) Placeholder() string {
	return s.placeholder
}

// Sanitize returns the image value to persist. Valid data URIs pass through
// unchanged, http(s) URLs are probed when a prober is configured, and empty,
// malformed or unreachable values map to the placeholder.
func (s *Sanitizer) Sanitize(ctx context.Context, image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return s.placeholder
	}
	if strings.HasPrefix(image, "data:") {
		if s.validDataURI(image) {
			return image
		}
		return s.placeholder
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		if s.prober == nil {
			return image
		}
		if err := s.probe(ctx, image); err != nil {
			return s.placeholder
		}
		return image
	}
	// relative asset paths are served by the frontend bundle
	if strings.HasPrefix(image, "/") {
		return image
	}
	return s.placeholder
}

// probe runs the liveness check, cancelling any probe still in flight: when
// writes arrive in a burst only the newest probe is allowed to finish.
func (s *Sanitizer) probe(ctx context.Context, rawURL string) error {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	return s.prober.Probe(ctx, rawURL)
}

func (s *Sanitizer) validDataURI(image string) bool {
	m := dataURIRe.FindString(image)
	if m == "" {
		return false
	}
	payload := image[len(m):]
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return false
	}
	if len(decoded) == 0 {
		return false
	}
	if s.maxBytes > 0 && len(decoded) > s.maxBytes {
		return false
	}
	return true
}

// Prober checks whether a remote image URL is reachable. Probes are bounded
// by the configured timeout so a dead host cannot stall a write.
type Prober struct {
	client  *http.Client
	timeout config.InventoryConfig
}

// NewProber builds a prober with the configured probe timeout.
func NewProber(cfg config.InventoryConfig) *Prober {
	return &Prober{
		client:  &http.Client{Timeout: cfg.ImageProbeTimeout},
		timeout: cfg,
	}
}

// Probe issues a HEAD request for the URL. It returns nil when the host
// answers with a success status and an image content type.
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("image url must be http or https")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout.ImageProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("probing image url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image url answered %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("image url answered content type %q", ct)
	}
	return nil
}
