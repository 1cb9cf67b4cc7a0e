package options

// Source is the raw connection input accepted by Resolve: either a URL
// string or a Fields bag.
type Source interface {
	source()
}

// URL is a connection URL string, shorthand for Fields{URL: string(u)}.
type URL string

func (URL) source() {}

// Fields is a bag of individual connection fields. Zero values mean absent:
// an empty string field is skipped, a nil Port is skipped. Port is a pointer
// because an explicit zero port must be rejected, not ignored.
//
// Fields are applied in a fixed canonical order, each later field free to
// override values derived from an earlier one:
//
//	SSL, Host, Port, Path, URL, APIKey, Key, Username, Password, Token
//
// Consequences of the order: a URL overrides SSL/Host/Port/Path set before
// it, explicit credentials override URL userinfo, Key beats APIKey, and an
// explicit Password beats both aliases.
type Fields struct {
	// SSL enables TLS and switches the default port to 443.
	SSL bool `mapstructure:"ssl"`
	// Host is the server hostname. Defaults to "localhost".
	Host string `mapstructure:"host"`
	// Port is the server port, 1..65535.
	Port *int `mapstructure:"-"`
	// Path is the base path prefixed to every endpoint. Defaults to "/".
	Path string `mapstructure:"path"`
	// URL is a full connection URL; it may set SSL, Host, Port, Path,
	// Username and Password in one go.
	URL string `mapstructure:"url"`
	// APIKey is an alias for Password.
	APIKey string `mapstructure:"api_key"`
	// Key is an alias for Password, overriding APIKey when both are set.
	Key string `mapstructure:"key"`
	// Username is the basic auth username.
	Username string `mapstructure:"username"`
	// Password is the basic auth password, overriding APIKey and Key.
	Password string `mapstructure:"password"`
	// Token is appended to every plain request's parameters under "token".
	Token string `mapstructure:"token"`
}

func (Fields) source() {}

// Config is the resolved connection configuration. It is immutable once
// resolved; callers wanting different settings resolve a new one.
type Config struct {
	// UseTLS selects https / TLS sockets.
	UseTLS bool
	// Host is the server hostname.
	Host string `validate:"required"`
	// Port is the server port.
	Port uint16 `validate:"required"`
	// BasePath is prefixed to every endpoint path.
	BasePath string `validate:"required"`
	// Username and Password are basic auth credentials. Empty means absent.
	Username string
	Password string
	// AuthToken is injected into every plain request's parameters under
	// the key "token". JSON-RPC calls never use it.
	AuthToken string
}

// HasCredentials reports whether basic auth credentials are configured.
func (c Config) HasCredentials() bool {
	return c.Username != "" || c.Password != ""
}
