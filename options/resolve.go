package options

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	defaultHost     = "localhost"
	defaultPort     = 80
	defaultTLSPort  = 443
	defaultBasePath = "/"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Resolve merges a raw Source into a fully-populated Config. It either fully
// succeeds or fails with a *ValidationError; no partial Config is returned.
func Resolve(src Source) (Config, error) {
	var f Fields
	switch s := src.(type) {
	case URL:
		f = Fields{URL: string(s)}
	case Fields:
		f = s
	default:
		return Config{}, NewValidationError("missing connection options")
	}

	cfg := Config{
		Host:     defaultHost,
		Port:     defaultPort,
		BasePath: defaultBasePath,
	}

	// Canonical field order. Each later field overrides earlier ones.
	if f.SSL {
		cfg.UseTLS = true
		cfg.Port = defaultTLSPort
	}
	if f.Host != "" {
		cfg.Host = f.Host
	}
	if f.Port != nil {
		p, err := checkPort(*f.Port)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = p
	}
	if f.Path != "" {
		cfg.BasePath = f.Path
	}
	if f.URL != "" {
		if err := applyURL(&cfg, f.URL); err != nil {
			return Config{}, err
		}
	}
	if f.APIKey != "" {
		cfg.Password = f.APIKey
	}
	if f.Key != "" {
		cfg.Password = f.Key
	}
	if f.Username != "" {
		cfg.Username = f.Username
	}
	if f.Password != "" {
		cfg.Password = f.Password
	}
	if f.Token != "" {
		cfg.AuthToken = f.Token
	}

	if err := getValidator().Struct(cfg); err != nil {
		return Config{}, &ValidationError{Message: "invalid configuration", Err: err}
	}
	return cfg, nil
}

// applyURL parses a connection URL and overlays its components on cfg.
// A string without a scheme separator is treated as http.
func applyURL(cfg *Config, raw string) error {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Message: "Malformed URL", Err: err}
	}

	switch u.Scheme {
	case "http":
		cfg.UseTLS = false
		cfg.Port = defaultPort
	case "https":
		cfg.UseTLS = true
		cfg.Port = defaultTLSPort
	default:
		return NewValidationError("Malformed URL")
	}

	host := u.Hostname()
	if host == "" {
		return NewValidationError("Malformed URL")
	}
	cfg.Host = host

	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return &ValidationError{Message: "Malformed URL", Err: err}
		}
		port, err := checkPort(n)
		if err != nil {
			return err
		}
		cfg.Port = port
	}

	if u.Path != "" {
		cfg.BasePath = u.Path
	} else {
		cfg.BasePath = defaultBasePath
	}

	if u.User != nil {
		cfg.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			cfg.Password = pw
		}
	}
	return nil
}

// checkPort validates a port value as nonzero 16-bit.
func checkPort(n int) (uint16, error) {
	if n < 1 || n > 65535 {
		return 0, NewValidationError("Invalid port")
	}
	return uint16(n), nil
}
