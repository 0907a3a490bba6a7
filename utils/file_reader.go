package utils

import (
	"fmt"
	"os"
)

func GetConfigFile(filepath string) ([]byte, error) {
	configFileBytes, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", filepath, err)
	}

	return configFileBytes, nil
}
