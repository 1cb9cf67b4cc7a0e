package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/apiclient/options"
)

// keys are the recognized connection option keys, in config-file form.
var keys = []string{
	"ssl", "host", "port", "path", "url",
	"api_key", "key", "username", "password", "token",
}

// Load reads connection fields from a YAML file. API_-prefixed environment
// variables override file values.
func Load(path string) (options.Fields, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return options.Fields{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return fields(v)
}

// LoadEnv reads connection fields from the environment only, loading a
// .env file from the working directory first when one exists.
func LoadEnv() (options.Fields, error) {
	_ = godotenv.Load()
	return fields(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees env-backed keys that were explicitly bound.
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	return v
}

func fields(v *viper.Viper) (options.Fields, error) {
	var f options.Fields
	if err := v.Unmarshal(&f); err != nil {
		return options.Fields{}, fmt.Errorf("config: decode: %w", err)
	}
	// Port needs presence detection: absent and zero are different inputs.
	if v.IsSet("port") {
		p := v.GetInt("port")
		f.Port = &p
	}
	return f, nil
}
