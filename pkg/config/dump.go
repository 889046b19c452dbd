package config

import (
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Dump renders cfg as TOML
func Dump(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
