package verification

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"absensiku_backend/internals/helpers/errs"
)

func TestHTTPClient_Liveness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/liveness/check" {
			t.Errorf("path = %s, want /liveness/check", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		w.Write([]byte(`{"liveness_passed":true,"liveness_score":0.87}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	res, err := c.Liveness(context.Background(), "not-base64-payload", "passive")
	if err != nil {
		t.Fatalf("Liveness() error = %v", err)
	}
	if !res.LivenessPassed || res.LivenessScore != 0.87 {
		t.Errorf("result = %+v", res)
	}
}

func TestHTTPClient_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"match_passed":false,"match_score":0.42}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	res, err := c.Verify(context.Background(), "frame", "abc123")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if res.MatchPassed || res.MatchScore != 0.42 {
		t.Errorf("result = %+v", res)
	}
}

func TestHTTPClient_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	_, err := c.Liveness(context.Background(), "frame", "passive")
	if !errors.Is(err, errs.ErrVerificationUnavailable) {
		t.Errorf("5xx error = %v, want ErrVerificationUnavailable", err)
	}
}

func TestHTTPClient_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 20*time.Millisecond)
	_, err := c.Liveness(context.Background(), "frame", "passive")
	if !errors.Is(err, errs.ErrVerificationUnavailable) {
		t.Errorf("timeout error = %v, want ErrVerificationUnavailable", err)
	}
}

func TestHTTPClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	// port yang sudah ditutup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.Verify(context.Background(), "frame", "hash")
	if !errors.Is(err, errs.ErrVerificationUnavailable) {
		t.Errorf("refused error = %v, want ErrVerificationUnavailable", err)
	}
}

func TestHTTPClient_ClientErrorIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	_, err := c.Enroll(context.Background(), "frame", true)
	if err == nil {
		t.Fatal("Enroll() = nil, want error")
	}
	if errors.Is(err, errs.ErrVerificationUnavailable) {
		t.Error("4xx must not be mapped to unavailable")
	}
}

func TestNormalizeImage_PassthroughOnInvalidPayload(t *testing.T) {
	tests := []string{
		"definitely not base64 !!!",
		base64.StdEncoding.EncodeToString([]byte("not an image at all")),
	}
	for _, in := range tests {
		if got := NormalizeImage(in); got != in {
			t.Errorf("NormalizeImage(%q) changed payload, want passthrough", in)
		}
	}
}

func TestNormalizeImage_ReencodesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	in := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	out := NormalizeImage(in)
	if out == in {
		t.Fatal("expected re-encoded payload, got passthrough")
	}
	if _, err := base64.StdEncoding.DecodeString(out); err != nil {
		t.Errorf("output is not valid base64: %v", err)
	}
}
