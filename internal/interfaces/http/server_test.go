package http

import (
	"context"
	"testing"
	"time"

	"github.com/turtacn/molgraph/internal/interfaces/http/handlers"
)

func TestNewServer(t *testing.T) {
	cfg := RouterConfig{SmilesHandler: handlers.NewSmilesHandler()}
	server := NewServer(8080, cfg)

	if server == nil {
		t.Fatal("server should not be nil")
	}
	if server.srv.Addr != ":8080" {
		t.Errorf("expected addr=:8080, got %s", server.srv.Addr)
	}
	if server.Handler() == nil {
		t.Error("expected a non-nil handler")
	}
}

func TestServer_Stop(t *testing.T) {
	cfg := RouterConfig{SmilesHandler: handlers.NewSmilesHandler()}
	server := NewServer(0, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		t.Errorf("stop failed: %v", err)
	}
}
