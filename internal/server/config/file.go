package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. It is decoded from
// JSON or YAML and then overlaid onto Config; zero values leave the current
// setting untouched.
type FileConfig struct {
	HTTPAddr           string   `json:"http_addr" yaml:"http_addr"`
	GRPCAddr           string   `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN        string   `json:"database_dsn" yaml:"database_dsn"`
	AccessTokenSecret  string   `json:"access_token_secret" yaml:"access_token_secret"`
	AccessTokenExpiry  Duration `json:"access_token_expiry" yaml:"access_token_expiry"`
	RefreshTokenSecret string   `json:"refresh_token_secret" yaml:"refresh_token_secret"`
	RefreshTokenExpiry Duration `json:"refresh_token_expiry" yaml:"refresh_token_expiry"`
	CORSOrigin         string   `json:"cors_origin" yaml:"cors_origin"`
	CookieSecure       *bool    `json:"cookie_secure" yaml:"cookie_secure"`
	BcryptCost         int      `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	RedisAddr          string   `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword      string   `json:"redis_password" yaml:"redis_password"`
	RedisDB            int      `json:"redis_db" yaml:"redis_db"`
	S3Bucket           string   `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region           string   `json:"s3_region" yaml:"s3_region"`
	S3Endpoint         string   `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey        string   `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey        string   `json:"s3_secret_key" yaml:"s3_secret_key"`
	LogLevel           string   `json:"log_level" yaml:"log_level"`
	LogFormat          string   `json:"log_format" yaml:"log_format"`
}

// parseFile loads path into config. An empty path is a no-op. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(config *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return common.Configuration(fmt.Sprintf("read config file %s: %v", path, err))
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return common.Configuration(fmt.Sprintf("parse config file %s: %v", path, err))
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AccessTokenSecret, c.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3Endpoint, c.S3Endpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.AccessTokenExpiry.Duration != 0 {
		config.AccessTokenExpiry = c.AccessTokenExpiry.Duration
	}
	if c.RefreshTokenExpiry.Duration != 0 {
		config.RefreshTokenExpiry = c.RefreshTokenExpiry.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.RedisDB != 0 {
		config.RedisDB = c.RedisDB
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
