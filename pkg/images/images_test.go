package images

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillegas/cabstock-backend/pkg/config"
)

func testConfig() config.InventoryConfig {
	return config.InventoryConfig{
		DefaultImageURL:   "/images/placeholder.png",
		ImageMaxBytes:     1024,
		ImageProbeTimeout: 2 * time.Second,
	}
}

func validDataURI() string {
	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
	return "data:image/png;base64," + payload
}

func TestSanitizeKeepsValidDataURI(t *testing.T) {
	s := NewSanitizer(testConfig())
	uri := validDataURI()
	assert.Equal(t, uri, s.Sanitize(context.Background(), uri))
}

func TestSanitizeReplacesMalformedValues(t *testing.T) {
	s := NewSanitizer(testConfig())

	cases := map[string]string{
		"empty":             "",
		"not a uri":         "just-text",
		"wrong mime":        "data:text/plain;base64,aGVsbG8=",
		"bad base64":        "data:image/png;base64,%%%not-base64%%%",
		"empty payload":     "data:image/png;base64,",
		"script masquerade": "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, s.Placeholder(), s.Sanitize(context.Background(), input))
		})
	}
}

func TestSanitizeEnforcesSizeCap(t *testing.T) {
	cfg := testConfig()
	cfg.ImageMaxBytes = 2
	s := NewSanitizer(cfg)

	assert.Equal(t, s.Placeholder(), s.Sanitize(context.Background(), validDataURI()))
}

func TestSanitizePassesURLsThroughWithoutProber(t *testing.T) {
	s := NewSanitizer(testConfig())
	assert.Equal(t, "https://cdn.example.com/cab.png", s.Sanitize(context.Background(), "https://cdn.example.com/cab.png"))
	assert.Equal(t, "/images/cab.png", s.Sanitize(context.Background(), "/images/cab.png"))
}

type proberFunc func(ctx context.Context, rawURL string) error

func (f proberFunc) Probe(ctx context.Context, rawURL string) error { return f(ctx, rawURL) }

func TestSanitizeProbesRemoteURLs(t *testing.T) {
	var probed []string
	s := NewSanitizer(testConfig()).WithProber(proberFunc(func(_ context.Context, rawURL string) error {
		probed = append(probed, rawURL)
		return nil
	}))

	assert.Equal(t, "https://cdn.example.com/cab.png", s.Sanitize(context.Background(), "https://cdn.example.com/cab.png"))
	assert.Equal(t, []string{"https://cdn.example.com/cab.png"}, probed)

	// data URIs and bundle paths are never probed
	s.Sanitize(context.Background(), validDataURI())
	s.Sanitize(context.Background(), "/images/cab.png")
	assert.Len(t, probed, 1)
}

func TestSanitizeReplacesUnreachableURL(t *testing.T) {
	s := NewSanitizer(testConfig()).WithProber(proberFunc(func(context.Context, string) error {
		return context.DeadlineExceeded
	}))

	assert.Equal(t, s.Placeholder(), s.Sanitize(context.Background(), "https://dead.example.com/cab.png"))
}

type supersededProber struct {
	mu           sync.Mutex
	calls        int
	firstStarted chan struct{}
	firstErr     chan error
}

func (p *supersededProber) Probe(ctx context.Context, _ string) error {
	p.mu.Lock()
	p.calls++
	first := p.calls == 1
	p.mu.Unlock()

	if first {
		close(p.firstStarted)
		<-ctx.Done()
		p.firstErr <- ctx.Err()
		return ctx.Err()
	}
	return nil
}

func TestNewerProbeCancelsInFlightProbe(t *testing.T) {
	p := &supersededProber{firstStarted: make(chan struct{}), firstErr: make(chan error, 1)}
	s := NewSanitizer(testConfig()).WithProber(p)

	var got string
	done := make(chan struct{})
	go func() {
		got = s.Sanitize(context.Background(), "https://cdn.example.com/old.png")
		close(done)
	}()

	<-p.firstStarted
	assert.Equal(t, "https://cdn.example.com/new.png",
		s.Sanitize(context.Background(), "https://cdn.example.com/new.png"))

	<-done
	assert.Equal(t, s.Placeholder(), got, "superseded probe falls back to the placeholder")
	assert.ErrorIs(t, <-p.firstErr, context.Canceled)
}

func TestProbeAcceptsReachableImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(testConfig())
	require.NoError(t, p.Probe(context.Background(), srv.URL))
}

func TestProbeRejectsNonImageAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(testConfig())
	assert.Error(t, p.Probe(context.Background(), srv.URL))
	assert.Error(t, p.Probe(context.Background(), "ftp://example.com/a.png"))
}

func TestProbeHonorsTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.ImageProbeTimeout = 50 * time.Millisecond

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewProber(cfg)
	assert.Error(t, p.Probe(context.Background(), srv.URL))
}
