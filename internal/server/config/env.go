package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// dotenvPath is the optional .env file loaded before reading the
// environment. Existing variables are never overridden by it.
var dotenvPath = ".env"

// envKeys lists the environment variables recognised by parseEnv.
var envKeys = []string{
	"PORT", "GRPC_PORT", "DATABASE_URL",
	"ACCESS_TOKEN_SECRET", "ACCESS_TOKEN_EXPIRY",
	"REFRESH_TOKEN_SECRET", "REFRESH_TOKEN_EXPIRY",
	"CORS_ORIGIN", "COOKIE_SECURE", "BCRYPT_COST",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"LOG_LEVEL", "LOG_FORMAT",
}

// parseEnv overlays environment variables onto config. Unset or empty
// variables leave the current value in place; malformed numbers, booleans
// and durations are configuration errors.
func parseEnv(config *Config) error {
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			return common.Configuration(fmt.Sprintf("load %s: %v", dotenvPath, err))
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	get := func(k string) string { return strings.TrimSpace(v.GetString(k)) }

	if p := get("PORT"); p != "" {
		config.HTTPAddr = portToAddr(p)
	}
	if p := get("GRPC_PORT"); p != "" {
		config.GRPCAddr = portToAddr(p)
	}
	setString(&config.DatabaseDSN, get("DATABASE_URL"))
	setString(&config.AccessTokenSecret, v.GetString("ACCESS_TOKEN_SECRET"))
	setString(&config.RefreshTokenSecret, v.GetString("REFRESH_TOKEN_SECRET"))
	setString(&config.CORSOrigin, get("CORS_ORIGIN"))
	setString(&config.RedisAddr, get("REDIS_ADDR"))
	setString(&config.RedisPassword, v.GetString("REDIS_PASSWORD"))
	setString(&config.S3Bucket, get("S3_BUCKET"))
	setString(&config.S3Region, get("S3_REGION"))
	setString(&config.S3Endpoint, get("S3_ENDPOINT"))
	setString(&config.S3AccessKey, get("S3_ACCESS_KEY"))
	setString(&config.S3SecretKey, v.GetString("S3_SECRET_KEY"))
	setString(&config.LogLevel, get("LOG_LEVEL"))
	setString(&config.LogFormat, get("LOG_FORMAT"))

	if s := get("ACCESS_TOKEN_EXPIRY"); s != "" {
		d, err := ParseDuration(s)
		if err != nil {
			return common.Configuration("ACCESS_TOKEN_EXPIRY: " + err.Error())
		}
		config.AccessTokenExpiry = d
	}
	if s := get("REFRESH_TOKEN_EXPIRY"); s != "" {
		d, err := ParseDuration(s)
		if err != nil {
			return common.Configuration("REFRESH_TOKEN_EXPIRY: " + err.Error())
		}
		config.RefreshTokenExpiry = d
	}
	if s := get("COOKIE_SECURE"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return common.Configuration("COOKIE_SECURE: invalid boolean " + strconv.Quote(s))
		}
		config.CookieSecure = b
	}
	if s := get("BCRYPT_COST"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return common.Configuration("BCRYPT_COST: invalid integer " + strconv.Quote(s))
		}
		config.BcryptCost = n
	}
	if s := get("REDIS_DB"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return common.Configuration("REDIS_DB: invalid integer " + strconv.Quote(s))
		}
		config.RedisDB = n
	}
	return nil
}

// portToAddr turns a bare port number into a listen address.
func portToAddr(p string) string {
	if _, err := strconv.Atoi(p); err == nil {
		return ":" + p
	}
	return p
}
