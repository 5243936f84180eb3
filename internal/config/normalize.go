package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDocset()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Destination) == "" {
		c.Paths.Destination = defaultDestination
	}
	if c.Paths.Destination, err = expandPath(strings.TrimSpace(c.Paths.Destination)); err != nil {
		return fmt.Errorf("paths.destination: %w", err)
	}
	if strings.TrimSpace(c.Paths.GlobalDir) == "" {
		c.Paths.GlobalDir = defaultGlobalDir
	}
	if c.Paths.GlobalDir, err = expandPath(strings.TrimSpace(c.Paths.GlobalDir)); err != nil {
		return fmt.Errorf("paths.global_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDocset() {
	c.Docset.FullTextSearch = strings.ToLower(strings.TrimSpace(c.Docset.FullTextSearch))
	if c.Docset.FullTextSearch == "" {
		c.Docset.FullTextSearch = defaultFullTextSearch
	}
	c.Docset.OnlineRedirectURL = strings.TrimSpace(c.Docset.OnlineRedirectURL)
	c.Docset.PlaygroundURL = strings.TrimSpace(c.Docset.PlaygroundURL)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
