package config

const (
	defaultVocabDir  = "."
	defaultDatabase  = "assets/V6.db"
	defaultLogDir    = "~/.local/share/jlptag/logs"
	defaultEncoding  = "utf-8"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VocabDir: defaultVocabDir,
			Database: defaultDatabase,
			LogDir:   defaultLogDir,
		},
		Vocab: Vocab{
			Encoding: defaultEncoding,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
