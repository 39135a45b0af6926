package main

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Codepage of non unicode message table strings.
	Codepage string `yaml:"codepage" default:"windows-1252"`

	// Resources larger than this are not read.
	MaxResourceDataSize int64 `yaml:"max_resource_data_size" default:"104857600"`

	Debug bool `yaml:"debug"`
}

func loadConfig(path string) (*Config, error) {
	config := &Config{}
	err := defaults.Set(config)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %v", path)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %v", path)
	}

	return config, nil
}
