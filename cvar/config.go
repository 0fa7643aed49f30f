// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"portalkit/plog"
)

// LoadConfig applies a YAML document of name: value pairs to
// registered variables. Unknown names are logged and skipped so a
// config written for a newer build still loads.
func LoadConfig(data []byte) error {
	var doc map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parse config")
	}
	for name, value := range doc {
		cv, ok := Get(name)
		if !ok {
			plog.L().Warn("unknown config variable", zap.String("name", name))
			continue
		}
		cv.SetByString(value)
	}
	return nil
}

func LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	return LoadConfig(data)
}
