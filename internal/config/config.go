// Package config loads project settings from famtree.yml, a .env file and
// FAMTREE_* environment variables, and reads strategy documents.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/famtree/internal/export"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "famtree-out"

// ProjectConfig holds project-level settings loaded from famtree.yml.
type ProjectConfig struct {
	OutputDir   string          `yaml:"outputDir,omitempty"`
	Format      string          `yaml:"format,omitempty" validate:"omitempty,oneof=mermaid mmd json canvas"`
	Stubs       bool            `yaml:"stubs,omitempty"`
	Overview    bool            `yaml:"overview,omitempty"`
	Concurrency int             `yaml:"concurrency,omitempty" validate:"gte=0"`
	CacheSize   int             `yaml:"cacheSize,omitempty" validate:"gte=0"`
	IndexPath   string          `yaml:"indexPath,omitempty"`
	Debug       bool            `yaml:"debug,omitempty"`
	S3          export.S3Config `yaml:"s3,omitempty"`
}

var validate = validator.New()

// Load reads famtree.yml or famtree.yaml from dir, then applies dir/.env and
// finally the process environment, each overriding the previous source.
// A missing config file yields a zero-value config, not an error.
func Load(dir string) (*ProjectConfig, error) {
	cfg := &ProjectConfig{}
	for _, name := range []string{"famtree.yml", "famtree.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		break
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides fields from FAMTREE_* variables.
func (c *ProjectConfig) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("FAMTREE_OUTPUT_DIR", &c.OutputDir)
	str("FAMTREE_FORMAT", &c.Format)
	str("FAMTREE_INDEX", &c.IndexPath)
	str("FAMTREE_S3_ENDPOINT", &c.S3.Endpoint)
	str("FAMTREE_S3_REGION", &c.S3.Region)
	str("FAMTREE_S3_ACCESS_KEY", &c.S3.AccessKey)
	str("FAMTREE_S3_SECRET_KEY", &c.S3.SecretKey)
	str("FAMTREE_S3_BUCKET", &c.S3.Bucket)
	str("FAMTREE_S3_PREFIX", &c.S3.Prefix)

	for key, dst := range map[string]*bool{
		"FAMTREE_DEBUG":      &c.Debug,
		"FAMTREE_STUBS":      &c.Stubs,
		"FAMTREE_OVERVIEW":   &c.Overview,
		"FAMTREE_S3_USE_SSL": &c.S3.UseSSL,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*int{
		"FAMTREE_CONCURRENCY": &c.Concurrency,
		"FAMTREE_CACHE_SIZE":  &c.CacheSize,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedOutputDir returns OutputDir, or DefaultOutputDir under base when
// unset. Relative paths are resolved against base.
func (c *ProjectConfig) ResolvedOutputDir(base string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
