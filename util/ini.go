package util

import (
	"gopkg.in/ini.v1"
)

// Ini loads the unnamed section of an ini file into a map.
func Ini(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Section("").KeysHash(), nil
}
