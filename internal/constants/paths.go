// Package constants contains names for the files, directories and environment
// variables used by tgsms.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "tgsms"

	// ConfigFilename is the default configuration file, relative to the working directory.
	ConfigFilename = "telegram_sms_config.json"

	// LogFilename is the default log file name for tgsms.
	LogFilename = "tgsms.log"

	// DatabaseFilename is the send history database file name.
	DatabaseFilename = "history.db"
)

// Environment variables read at startup. A .env file in the working
// directory may set them too.
const (
	EnvConfigPath = "TGSMS_CONFIG"
	EnvLogLevel   = "TGSMS_LOG_LEVEL"
)
