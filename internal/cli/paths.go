package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrickward/twospace/internal/settings"
)

// getXDGHome returns the XDG base directory named by envVar, falling back to $HOME/<fallback>
func getXDGHome(envVar string, fallback ...string) (string, error) {
	if dir := os.Getenv(envVar); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine user home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...), nil
}

// getConfigFile determines the settings file using a tiered approach:
// 1. The --config flag takes the highest precedence.
// 2. Environment variable TWOSPACE_CONFIG if the flag is not set.
// 3. XDG_CONFIG_HOME/twospace/settings.yaml or $HOME/.config/twospace/settings.yaml as fallback
func getConfigFile(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if file := os.Getenv("TWOSPACE_CONFIG"); file != "" {
		return file, nil
	}

	configHome, err := getXDGHome("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", fmt.Errorf("unable to determine XDG_CONFIG_HOME: %w", err)
	}

	return filepath.Join(configHome, "twospace", settings.DefaultFileName), nil
}

// getKeysDirectory determines the keys directory using a tiered approach:
// 1. The --keys-dir flag takes the highest precedence.
// 2. Environment variable TWOSPACE_KEYS_DIR if the flag is not set.
// 3. XDG_DATA_HOME/twospace/keys or $HOME/.local/share/twospace/keys as fallback
func getKeysDirectory(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if keysDir := os.Getenv("TWOSPACE_KEYS_DIR"); keysDir != "" {
		return keysDir, nil
	}

	dataHome, err := getXDGHome("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", fmt.Errorf("unable to determine XDG_DATA_HOME: %w", err)
	}

	return filepath.Join(dataHome, "twospace", "keys"), nil
}

// getLogDirectory returns the --log-dir flag or TWOSPACE_LOG_DIR. Empty means stderr only
func getLogDirectory(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("TWOSPACE_LOG_DIR")
}

// getKeyFiles resolves the identity and recipient files: flags, then TWOSPACE_IDENTITIES_FILE and
// TWOSPACE_RECIPIENTS_FILE, then key.txt and key.pub in the keys directory when both exist
func getKeyFiles(identityFlag, recipientFlag, keysDir string) (identitiesFile, recipientsFile string) {
	identitiesFile = identityFlag
	if identitiesFile == "" {
		identitiesFile = os.Getenv("TWOSPACE_IDENTITIES_FILE")
	}

	recipientsFile = recipientFlag
	if recipientsFile == "" {
		recipientsFile = os.Getenv("TWOSPACE_RECIPIENTS_FILE")
	}

	if identitiesFile != "" || recipientsFile != "" || keysDir == "" {
		return identitiesFile, recipientsFile
	}

	defaultIdentities := filepath.Join(keysDir, "key.txt")
	defaultRecipients := filepath.Join(keysDir, "key.pub")
	if fileExists(defaultIdentities) && fileExists(defaultRecipients) {
		return defaultIdentities, defaultRecipients
	}

	return "", ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
