// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the process wide configuration.
var Config = viper.New()

type Reader interface {
	Get(key string) interface{}
	GetBool(key string) bool
	GetFloat64(key string) float64
	GetInt(key string) int
	GetString(key string) string
	GetStringSlice(key string) []string
	GetDuration(key string) time.Duration
	IsSet(key string) bool
}

type Writer interface {
	SetDefault(key string, val interface{})
	Set(key string, val interface{})
}

type Handler interface {
	Reader
	Writer
}

type Default struct {
	Key   string
	Value interface{}
}

// FromConfigFile applies the defaults and, if path is set, reads the
// configuration file on top of them.
func FromConfigFile(path string, defaults []Default) error {
	return Load(Config, path, defaults)
}

// Load is FromConfigFile for a given viper instance.
func Load(c *viper.Viper, path string, defaults []Default) error {
	SetDefaults(c, defaults)
	if path == "" {
		return nil
	}
	c.SetConfigFile(path)
	if err := c.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read configuration file %s", path)
	}
	return nil
}

func SetDefaults(c Writer, defaults []Default) {
	for _, def := range defaults {
		c.SetDefault(def.Key, def.Value)
	}
}
