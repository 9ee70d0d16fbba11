package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/price-dashboard/config"
)

// createTestConfig writes a test configuration pointing at mockURL and
// returns the path to the file
func createTestConfig(mockURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "price-dashboard-test")
	if err != nil {
		return "", err
	}

	configContent := fmt.Sprintf(`
log_level: debug

dashboard:
  update_interval: 300ms    # short interval for tests
  request_timeout: 2s
  connection_timeout: 1s
  display_timezone: "UTC"

failure_log:
  ttl: 1m

override_api_base_url: "%s"
`, mockURL)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
