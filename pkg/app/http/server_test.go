package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/chainsafe/swap-status/pkg/config"
)

func TestServeAndWait_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeAndWait(ctx, http.NotFoundHandler(), nil, &config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: time.Second,
		})
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeAndWait_RejectsNilInputs(t *testing.T) {
	if err := ServeAndWait(context.Background(), nil, nil, &config.ServerConfig{}); err == nil {
		t.Fatal("expected error for nil handler")
	}
	if err := ServeAndWait(context.Background(), http.NotFoundHandler(), nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
