// Package config assembles the runtime settings of SharkBite.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults
//  2. a dotenv file (-e/-env, default ".env" when present) and SHARKBITE_*
//     environment variables, the real environment taking precedence
//  3. a JSON file given with -c/-config
//  4. command-line flags
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/sharkbite/internal/dbx"
	"github.com/dmitrijs2005/sharkbite/internal/export"
	"github.com/dmitrijs2005/sharkbite/internal/models"
)

type Config struct {
	StoreDriver         string `json:"store_driver"`
	StoreDSN            string `json:"store_dsn"`
	LogLevel            string `json:"log_level"`
	LogFormat           string `json:"log_format"`
	ExportDir           string `json:"export_dir"`
	Timezone            string `json:"timezone"`
	ActiveSubjectPolicy string `json:"active_subject_policy"`

	S3Bucket    string `json:"s3_bucket"`
	S3Prefix    string `json:"s3_prefix"`
	S3Region    string `json:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
}

// LoadDefaults populates c with defaults suitable for a single classroom
// machine.
func (c *Config) LoadDefaults() {
	c.StoreDriver = string(dbx.DialectSQLite)
	c.StoreDSN = "sharkbite.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ExportDir = "exports"
	c.Timezone = ""
	c.ActiveSubjectPolicy = string(models.ClearIfAbsent)
}

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// LoadConfig builds a Config from args (without the program name) and the
// environment, then validates it.
func LoadConfig(args []string, lookup LookupEnv) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookup); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	if _, err := c.Dialect(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Dialect() (dbx.Dialect, error) {
	return dbx.ParseDialect(c.StoreDriver)
}

func (c *Config) Policy() (models.ActiveSubjectPolicy, error) {
	return models.ParseActiveSubjectPolicy(c.ActiveSubjectPolicy)
}

// Location resolves Timezone; empty means the machine's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// UsesS3 reports whether exports go to a bucket instead of ExportDir.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}

func (c *Config) S3() export.S3Config {
	return export.S3Config{
		Bucket:    c.S3Bucket,
		Prefix:    c.S3Prefix,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
}
