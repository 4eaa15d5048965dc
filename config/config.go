package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the config file looked up inside the config directory.
const FileName = "threatplane.config"

type Config struct {
	ConfigDir    string            `json:"-"`
	ListenAddr   string            `json:"listen_addr"`
	ProjectRoot  string            `json:"project_root"`
	DistDir      string            `json:"dist_dir,omitempty"`
	ThemeFile    string            `json:"theme_file,omitempty"`
	Debug        bool              `json:"debug,omitempty"`
	ProxyTargets map[string]string `json:"proxy_targets,omitempty"`
	NVDAPIKey    string            `json:"nvd_api_key,omitempty"`
	IPInfoToken  string            `json:"ipinfo_token,omitempty"`
}

func Default() Config {
	return Config{
		ConfigDir:    ".",
		ListenAddr:   ":3000",
		ProjectRoot:  ".",
		ThemeFile:    "theme.yaml",
		ProxyTargets: make(map[string]string),
	}
}

func Load(dir string) (Config, error) {
	cfgPath := filepath.Join(dir, FileName)

	f, err := os.Open(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ConfigDir = dir
			cfg.ApplyEnv()
			return cfg, nil
		}
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	cfg.ConfigDir = dir

	def := Default()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = def.ProjectRoot
	}
	if cfg.ProxyTargets == nil {
		cfg.ProxyTargets = make(map[string]string)
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// ApplyEnv lets the environment override secrets and the listen address.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("THREATPLANE_LISTEN")); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("NVD_API_KEY")); v != "" {
		c.NVDAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("IPINFO_TOKEN")); v != "" {
		c.IPInfoToken = v
	}
}

// Resolve turns a path from the config file into one relative to the
// config directory. Absolute and empty paths pass through.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ConfigDir, p)
}

// DistPath is where built assets are served from; it defaults to the
// project's dist directory.
func (c Config) DistPath() string {
	if c.DistDir != "" {
		return c.Resolve(c.DistDir)
	}
	return filepath.Join(c.Resolve(c.ProjectRoot), "dist")
}

// ProxyHeaders returns the credential headers to attach per proxy prefix.
func (c Config) ProxyHeaders() map[string]map[string]string {
	out := make(map[string]map[string]string)
	if c.NVDAPIKey != "" {
		out["/api/nvd"] = map[string]string{"apiKey": c.NVDAPIKey}
	}
	if c.IPInfoToken != "" {
		out["/api/ipinfo"] = map[string]string{"Authorization": "Bearer " + c.IPInfoToken}
	}
	return out
}

// Save writes the config next to its directory, replacing any existing
// file atomically.
func Save(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(cfg.ConfigDir, FileName+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(cfg.ConfigDir, FileName)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
