package config

import (
	"fmt"
	"net/url"
)

func requireURL(envName, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", envName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", envName, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", envName, value)
	}
	return nil
}

func MinLength(envName, value string, n int) error {
	if len(value) < n {
		return fmt.Errorf("%s must be at least %d bytes long, got %d", envName, n, len(value))
	}
	return nil
}
