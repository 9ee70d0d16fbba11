package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/status-im/price-dashboard/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	MockServer    *MockServer
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest starts the whole stack against a fresh mock API. prepare runs
// before services start so tests can shape the first responses.
func SetupTest(t *testing.T, prepare ...func(*MockServer)) *TestEnv {
	ctx, cancel := context.WithCancel(context.Background())

	mockServer := NewMockServer()
	for _, p := range prepare {
		p(mockServer)
	}

	cfg, configPath, err := loadTestConfig(mockServer.GetURL())
	if err != nil {
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	testPort := "8081"
	os.Setenv("PORT", testPort)

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	serverBaseURL := fmt.Sprintf("http://localhost:%s", testPort)

	env := &TestEnv{
		Registry:      registry,
		MockServer:    mockServer,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: serverBaseURL,
	}

	if !waitFor(5*time.Second, func() bool {
		resp, err := http.Get(serverBaseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}) {
		env.TearDown()
		t.Fatalf("Server not responding at %s", serverBaseURL)
	}

	return env
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.Registry != nil {
		env.Registry.StopAll()
	}
	if env.MockServer != nil {
		env.MockServer.Close()
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
	}
}
