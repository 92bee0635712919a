package providers

import (
	"context"
	"testing"
	"time"

	"github.com/i474232898/zipcode-weather/internal/weather"
)

type countingGeocoder struct {
	calls int
}

func (c *countingGeocoder) Name() string { return "counting" }

func (c *countingGeocoder) Geocode(ctx context.Context, postalCode string) (weather.Location, error) {
	c.calls++
	return weather.Location{DisplayName: postalCode}, nil
}

func TestRateLimitedGeocoder(t *testing.T) {
	inner := &countingGeocoder{}
	g := NewRateLimitedGeocoder(inner, 0.001, 1)

	if g.Name() != "counting [Rate Limited]" {
		t.Errorf("unexpected name %q", g.Name())
	}

	// The burst token is available immediately.
	if _, err := g.Geocode(context.Background(), "78701"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The next token is far away, so a short deadline must fail without calling through.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Geocode(ctx, "78702"); err == nil {
		t.Fatal("expected rate limit wait to fail")
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}
