package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ArchiveRoot        string `toml:"archive_root"`
	OutputRoot         string `toml:"output_root"`
	MediaDir           string `toml:"media_dir"`
	DefaultPerspective string `toml:"default_perspective"`
	DBPath             string `toml:"db_path"`
	LogFile            string `toml:"log_file"`
	LogLevel           string `toml:"log_level"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ArchiveRoot: filepath.Join(home, "Downloads"),
		OutputRoot:  filepath.Join(home, "chats"),
		MediaDir:    "media",
		DBPath:      filepath.Join(home, ".config", "wabrowse", "wabrowse.db"),
		LogFile:     filepath.Join(home, ".config", "wabrowse", "wabrowse.log"),
		LogLevel:    "info",
	}

	cfgPath := filepath.Join(home, ".config", "wabrowse", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ArchiveRoot = expandHome(cfg.ArchiveRoot, home)
	cfg.OutputRoot = expandHome(cfg.OutputRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
