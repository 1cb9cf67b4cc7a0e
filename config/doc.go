// Package config loads connection fields from a YAML file, a .env file,
// and API_-prefixed environment variables. The result is an options.Fields
// bag, resolved by the caller via options.Resolve or client.New.
//
// Environment variables override file values: API_SSL, API_HOST, API_PORT,
// API_PATH, API_URL, API_API_KEY, API_KEY, API_USERNAME, API_PASSWORD,
// API_TOKEN.
package config
