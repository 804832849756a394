package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
}

var UserShhhSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserShhhSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "shhh"),
		UserDataPath:    filepath.Join(dataDir, "shhh"),
	}
}

// ConfigPath returns the path of the user config file.
func ConfigPath() string {
	return filepath.Join(UserShhhSettings.UserConfigsPath, "config.toml")
}

// HistoryPath returns the path of the history log.
func HistoryPath() string {
	return filepath.Join(UserShhhSettings.UserDataPath, "history.jsonl")
}
