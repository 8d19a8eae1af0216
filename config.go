/* Copyright (C) 2016 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package gotracks

/* -------------------------------------------------------------------------- */

import "bytes"
import "fmt"
import "io"
import "net/http"
import "os"
import "time"

import "gopkg.in/yaml.v3"

/* -------------------------------------------------------------------------- */

type Config struct {
  Endpoint       Endpoint          `yaml:"endpoint"`
  Codec          string            `yaml:"codec"`
  BinaryFastPath bool              `yaml:"binary_fast_path"`
  Timeout        time.Duration     `yaml:"timeout"`
  Render         RenderConfig      `yaml:"render"`
  Retry          RetryPolicy       `yaml:"retry"`
  Tracks         []TrackDescriptor `yaml:"tracks"`
}

type RenderConfig struct {
  AutoScale  bool    `yaml:"auto_scale"`
  FixedScale float64 `yaml:"fixed_scale"`
  MinScale   float64 `yaml:"min_scale"`
  Normalize  bool    `yaml:"normalize"`
  Width      float64 `yaml:"width"`
  Height     float64 `yaml:"height"`
}

func DefaultConfig() Config {
  return Config{
    Codec  : "text",
    Timeout: DefaultTimeout,
    Render : DefaultRenderConfig(),
    Retry  : DefaultRetryPolicy() }
}

func DefaultRenderConfig() RenderConfig {
  return RenderConfig{
    AutoScale : true,
    FixedScale: DefaultMinScale,
    MinScale  : DefaultMinScale,
    Width     : 800,
    Height    : 120 }
}

/* -------------------------------------------------------------------------- */

// Read a YAML configuration. Missing fields keep their default values.
func ReadConfig(r io.Reader) (Config, error) {
  config := DefaultConfig()

  data, err := io.ReadAll(r)
  if err != nil {
    return config, fmt.Errorf("failed to read config: %w", err)
  }
  decoder := yaml.NewDecoder(bytes.NewReader(data))
  decoder.KnownFields(true)
  if err := decoder.Decode(&config); err != nil && err != io.EOF {
    return config, fmt.Errorf("failed to parse config: %w", err)
  }
  return config, config.Validate()
}

func LoadConfig(filename string) (Config, error) {
  f, err := os.Open(filename)
  if err != nil {
    return Config{}, fmt.Errorf("failed to read config file: %w", err)
  }
  defer f.Close()

  return ReadConfig(f)
}

func (config Config) Validate() error {
  if config.Endpoint.URL == "" {
    return fmt.Errorf("endpoint url is required")
  }
  if _, err := NewWireCodec(config.Codec); err != nil {
    return err
  }
  if config.Timeout < 0 {
    return fmt.Errorf("timeout must not be negative")
  }
  if config.Render.MinScale < 0 {
    return fmt.Errorf("min_scale must not be negative")
  }
  if !config.Render.AutoScale && config.Render.FixedScale <= 0 {
    return fmt.Errorf("fixed_scale must be positive if auto_scale is disabled")
  }
  if config.Retry.MaxAttempts < 1 {
    return fmt.Errorf("retry max_attempts must be at least 1")
  }
  for i, t := range config.Tracks {
    if err := t.Validate(); err != nil {
      return fmt.Errorf("track %d: %w", i+1, err)
    }
  }
  return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
  return &http.Client{Timeout: timeout}
}
