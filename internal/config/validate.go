package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDocset(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDocset() error {
	switch c.Docset.FullTextSearch {
	case FullTextSearchOn, FullTextSearchOff, FullTextSearchForbidden:
	default:
		return fmt.Errorf("docset.full_text_search must be one of on, off, forbidden (got %q)", c.Docset.FullTextSearch)
	}
	if err := validateURL("docset.online_redirect_url", c.Docset.OnlineRedirectURL); err != nil {
		return err
	}
	if err := validateURL("docset.playground_url", c.Docset.PlaygroundURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL (got %q)", field, value)
	}
	return nil
}
