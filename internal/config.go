/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the vttcrate cli and the discord bot.
type Config struct {
	Ladder   LadderConfig   `yaml:"ladder"`
	LogStore LogStoreConfig `yaml:"logstore"`
	Source   SourceConfig   `yaml:"source"`
	Discord  DiscordConfig  `yaml:"discord"`
}

// LadderConfig controls roster output.
type LadderConfig struct {
	Separator string `yaml:"separator"`
}

// LogStoreConfig locates saved calculation logs. An empty Bucket keeps logs
// in memory only.
type LogStoreConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// SourceConfig controls fetching of results and player lists from the web.
type SourceConfig struct {
	CacheBucket string        `yaml:"cache_bucket"`
	MaxAge      time.Duration `yaml:"max_age"`
	Selector    string        `yaml:"selector"`
}

// DiscordConfig holds the bot's application credentials.
type DiscordConfig struct {
	AppID      string `yaml:"app_id"`
	PublicKey  string `yaml:"public_key"`
	Token      string `yaml:"token"`
	CommandID  string `yaml:"command_id"`
	ListenAddr string `yaml:"listen_addr"`
}

// LoadConfig loads the configuration from a YAML file and applies any
// environment overrides. A missing file is not an error; the configuration
// then comes from the environment and defaults alone.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %v: %w", filename, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (cfg *Config) applyEnv() error {
	strVars := map[string]*string{
		"VTTC_SEPARATOR":         &cfg.Ladder.Separator,
		"VTTC_LOG_BUCKET":        &cfg.LogStore.Bucket,
		"VTTC_LOG_PREFIX":        &cfg.LogStore.Prefix,
		"AWS_REGION":             &cfg.LogStore.Region,
		"VTTC_CACHE_BUCKET":      &cfg.Source.CacheBucket,
		"VTTC_SOURCE_SELECTOR":   &cfg.Source.Selector,
		"DISCORD_APP_ID":         &cfg.Discord.AppID,
		"DISCORD_PUBLIC_KEY":     &cfg.Discord.PublicKey,
		"DISCORD_BOT_TOKEN":      &cfg.Discord.Token,
		"DISCORD_COMMAND_ID":     &cfg.Discord.CommandID,
		"DISCORD_LISTEN_ADDRESS": &cfg.Discord.ListenAddr,
	}
	for name, dst := range strVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("VTTC_CACHE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// allow a bare number of seconds as well
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("invalid VTTC_CACHE_MAX_AGE %q: %w", v, err)
			}
			d = time.Duration(secs) * time.Second
		}
		cfg.Source.MaxAge = d
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.LogStore.Prefix == "" {
		cfg.LogStore.Prefix = DefaultLogPrefix
	}
	if cfg.Source.MaxAge <= 0 {
		cfg.Source.MaxAge = DefaultCacheMaxAge
	}
	if cfg.Source.Selector == "" {
		cfg.Source.Selector = DefaultSelector
	}
	if cfg.Discord.ListenAddr == "" {
		cfg.Discord.ListenAddr = DefaultListenAddr
	}
}
