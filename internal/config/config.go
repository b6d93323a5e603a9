// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, and environment
// variables.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// JWTSecret is the HMAC key used to sign and verify session tokens.
	JWTSecret string

	// CookieDomain scopes the session cookie to the serving domain.
	CookieDomain string

	// CORSOrigin is the single origin allowed to make credentialed
	// cross-site requests.
	CORSOrigin string

	// LogLevel sets the minimum structured-logging level.
	LogLevel string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:4000", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.CookieDomain, "cookie-domain", "", "domain attribute for the session cookie")
	flag.StringVar(&options.CORSOrigin, "origin", "", "allowed CORS origin")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
}

// Parse loads the .env file if present, parses command-line flags, and
// applies environment-variable overrides. It returns a pointer to the
// Options struct containing the resolved configuration values.
//
// DATABASE_DSN and JWT_SECRET are required; Parse exits the process if
// either is missing, since the server cannot reach its store or validate
// sessions without them.
func Parse() *Options {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	flag.Parse()

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Address = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if domain := os.Getenv("COOKIE_DOMAIN"); domain != "" {
		options.CookieDomain = domain
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		options.CORSOrigin = origin
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	options.JWTSecret = os.Getenv("JWT_SECRET")

	if options.DatabaseDSN == "" {
		log.Fatal("database DSN is required: set -d or DATABASE_DSN")
	}
	if options.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	return options
}
