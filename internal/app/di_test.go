package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/allisson/kms/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:      "info",
		ServerHost:    "127.0.0.1",
		ServerPort:    8080,
		KeystorePath:  filepath.Join(dir, "keystore.json"),
		KeyfilePath:   filepath.Join(dir, "keyfile.json"),
		KDFIterations: 2048,
		ChunkSize:     1024,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig(t))
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerKMSUseCase verifies lazy singleton initialization of the KMS use case.
func TestContainerKMSUseCase(t *testing.T) {
	container := NewContainer(testConfig(t))

	useCase, err := container.KMSUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil use case")
	}

	useCase2, err := container.KMSUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase != useCase2 {
		t.Error("expected same use case instance on multiple calls")
	}
}

// TestContainerEnvelopeUseCase verifies lazy initialization of the envelope use case.
func TestContainerEnvelopeUseCase(t *testing.T) {
	container := NewContainer(testConfig(t))

	useCase, err := container.EnvelopeUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil use case")
	}
}

// TestContainerHTTPServer verifies the HTTP server assembles with all dependencies.
func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(testConfig(t))

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
}

// TestContainerMetricsDisabled verifies metrics components are nil when disabled.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil provider when metrics are disabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer != nil {
		t.Error("expected nil metrics server when metrics are disabled")
	}
}

// TestContainerConcurrentInit verifies that independent components can
// initialize from concurrent goroutines without racing on shared state.
func TestContainerConcurrentInit(t *testing.T) {
	container := NewContainer(testConfig(t))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := container.KMSUseCase(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := container.EnvelopeUseCase(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := container.HTTPServer(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}

// TestContainerClose verifies the container shuts down cleanly.
func TestContainerClose(t *testing.T) {
	container := NewContainer(testConfig(t))

	if err := container.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
