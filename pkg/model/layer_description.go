package model

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kdudkov/chinacoord/pkg/coord"
)

type LayerDescription struct {
	Name        string       `yaml:"name"`
	Key         string       `yaml:"key"`
	MinZoom     int          `yaml:"minZoom"`
	MaxZoom     int          `yaml:"maxZoom"`
	Tms         bool         `yaml:"tms"`
	Url         string       `yaml:"url"`
	ServerParts []string     `yaml:"serverParts"`
	System      coord.System `yaml:"system"`
}

// ParseDescriptions decodes a yaml list of layers.
func ParseDescriptions(data []byte) ([]*LayerDescription, error) {
	var res []*LayerDescription

	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("invalid layers file: %w", err)
	}

	return res, nil
}
