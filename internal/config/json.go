package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/sharkbite/internal/flagx"
)

// parseJSON overlays cfg with the JSON file named by -c/-config. Keys that
// are absent from the file keep their current value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
