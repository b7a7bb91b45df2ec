package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads the application config (config/app.yaml) for a project.
// Environment variables prefixed with MAGIC_ override file values, so
// `MAGIC_APP_DEBUG=false magic config:get app.debug` works without editing
// the file.
func LoadConfig(root string) (*viper.Viper, error) {
	configDir := filepath.Join(root, "config")
	if _, err := os.Stat(filepath.Join(configDir, "app.yaml")); os.IsNotExist(err) {
		return nil, fmt.Errorf("config/app.yaml not found, run 'magic install' first")
	}

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.AutomaticEnv()
	v.SetEnvPrefix("MAGIC")
	// Dotted keys map to underscored variables: app.debug is overridden
	// by MAGIC_APP_DEBUG.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config/app.yaml: %w", err)
	}

	return v, nil
}
