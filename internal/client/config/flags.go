package config

import (
	"github.com/spf13/pflag"
)

// Flags mirrors the Config fields that can be overridden on the command
// line. Only flags the user actually set are applied.
type Flags struct {
	fs            *pflag.FlagSet
	serverURL     string
	dbPath        string
	publicBaseURL string
	logLevel      string
}

// BindFlags registers the client flags on fs.
//
//	-s, --server string     server base URL
//	-f, --db string         session database file
//	    --public-url string public base URL for recorded images
//	    --log-level string  debug, info, warn or error
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.serverURL, "server", "s", "", "photodrop server base URL")
	fs.StringVarP(&f.dbPath, "db", "f", "", "session database file")
	fs.StringVar(&f.publicBaseURL, "public-url", "", "public base URL for recorded images")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return f
}

// Apply copies the changed flags into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.fs.Changed("server") {
		cfg.ServerURL = f.serverURL
	}
	if f.fs.Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if f.fs.Changed("public-url") {
		cfg.PublicBaseURL = f.publicBaseURL
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}
