package config

const (
	defaultDestination    = "."
	defaultGlobalDir      = "~/Library/Application Support/doc2dash/DocSets"
	defaultFullTextSearch = FullTextSearchOff
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Destination: defaultDestination,
			GlobalDir:   defaultGlobalDir,
		},
		Docset: Docset{
			FullTextSearch: defaultFullTextSearch,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Patch: Patch{
			Progress: true,
		},
	}
}
