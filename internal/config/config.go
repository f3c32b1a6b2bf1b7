// Package config reads command-line flags, falling back to environment
// variables and an optional .env file.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	DBPath     string
	Addr       string
	LogPath    string
	LogLevel   slog.Level
	APIURL     string
	APIPrefix  string
	Timeout    time.Duration
	SessionTTL time.Duration
}

const usage = `Usage: inventory [flags]

Flags:
  -d, -db <path>          SQLite database path (default: inventory.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -log-level <level>      debug, info, warn or error (default: info)
  -api-url <url>          API base URL used by the console (default: this server)
  -api-prefix <path>      API collection path (default: /api/inventory)
  -timeout <duration>     console request timeout (default: 10s)
  -session-ttl <duration> idle console session lifetime (default: 30m)
  -h, -help               show this help and exit

Every flag can also be set with INVENTORY_<NAME>, e.g. INVENTORY_DB.
`

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", k, err)
	}
	return d, nil
}

// Load parses args. It returns flag.ErrHelp when help was requested.
func Load(args []string, output io.Writer) (Config, error) {
	_ = godotenv.Load() // load .env if it exists

	var cfg Config
	timeout, err := getenvDuration("INVENTORY_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, err
	}
	sessionTTL, err := getenvDuration("INVENTORY_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { fmt.Fprint(output, usage) }

	dbDefault := getenv("INVENTORY_DB", "inventory.sqlite3")
	fs.StringVar(&cfg.DBPath, "db", dbDefault, "")
	fs.StringVar(&cfg.DBPath, "d", dbDefault, "")

	addrDefault := getenv("INVENTORY_ADDR", ":8080")
	fs.StringVar(&cfg.Addr, "addr", addrDefault, "")
	fs.StringVar(&cfg.Addr, "a", addrDefault, "")

	logDefault := getenv("INVENTORY_LOG", "")
	fs.StringVar(&cfg.LogPath, "log", logDefault, "")
	fs.StringVar(&cfg.LogPath, "l", logDefault, "")

	logLevel := fs.String("log-level", getenv("INVENTORY_LOG_LEVEL", "info"), "")
	fs.StringVar(&cfg.APIURL, "api-url", getenv("INVENTORY_API_URL", ""), "")
	fs.StringVar(&cfg.APIPrefix, "api-prefix", getenv("INVENTORY_API_PREFIX", "/api/inventory"), "")
	fs.DurationVar(&cfg.Timeout, "timeout", timeout, "")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", sessionTTL, "")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return cfg, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return cfg, fmt.Errorf("invalid log level %q", *logLevel)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = selfURL(cfg.Addr)
	}
	return cfg, nil
}

// selfURL points the console at this server's own listener.
func selfURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}
