package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

func parseEnv(config *Config) error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}
