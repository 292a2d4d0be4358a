package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func manifestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckFindsNewerRelease(t *testing.T) {
	srv := manifestServer(t, `{"version":"2.0.0","url":"https://example.com/dl","notes":"big"}`)

	c := Start(context.Background(), Config{
		ManifestURL: srv.URL,
		Current:     "1.4.0",
		HTTPClient:  srv.Client(),
	})
	rel, err := c.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rel == nil || rel.Version != "2.0.0" || rel.URL != "https://example.com/dl" {
		t.Errorf("release = %+v", rel)
	}
}

func TestCheckCurrentVersionIsQuiet(t *testing.T) {
	srv := manifestServer(t, `{"version":"1.4.0"}`)

	c := Start(context.Background(), Config{
		ManifestURL: srv.URL,
		Current:     "v1.4.0",
		HTTPClient:  srv.Client(),
	})
	rel, err := c.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rel != nil {
		t.Errorf("release = %+v, want nil", rel)
	}
}

func TestCheckSwallowsFailures(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"bad current version", Config{ManifestURL: "http://127.0.0.1:0", Current: "not-semver"}},
		{"unreachable host", Config{ManifestURL: "http://127.0.0.1:0/x", Current: "1.0.0", Timeout: 200 * time.Millisecond}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Start(context.Background(), tc.cfg)
			rel, err := c.Wait(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if rel != nil {
				t.Errorf("release = %+v, want nil", rel)
			}
		})
	}
}

func TestCheckMalformedManifestIsQuiet(t *testing.T) {
	srv := manifestServer(t, `{not json`)

	c := Start(context.Background(), Config{
		ManifestURL: srv.URL,
		Current:     "1.0.0",
		HTTPClient:  srv.Client(),
	})
	rel, err := c.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rel != nil {
		t.Errorf("release = %+v, want nil", rel)
	}
}

func TestResultDoesNotBlock(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
		_, _ = w.Write([]byte(`{"version":"9.9.9"}`))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(blocked) })

	c := Start(context.Background(), Config{
		ManifestURL: srv.URL,
		Current:     "1.0.0",
		HTTPClient:  srv.Client(),
	})
	if _, done := c.Result(); done {
		t.Error("Result reported done while the fetch is blocked")
	}
	c.Stop()
}

func TestBanner(t *testing.T) {
	rel := &Release{Version: "2.0.0", URL: "https://example.com"}
	got := Banner(rel, "mytool")
	want := "A new version of mytool is available: 2.0.0 (https://example.com)"
	if got != want {
		t.Errorf("Banner = %q, want %q", got, want)
	}
}
