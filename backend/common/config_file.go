package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/sharebox.db\nUPLOAD_PATH=upload\nSERVER_ADDRESS=http://localhost:3000\nFRONTEND_BASE_URL=http://localhost:3000\nJWT_SECRET=%s\nJWT_REFRESH_SECRET=%s\n"

// LoadConfigFile reads ~/.config/sharebox/config.ini, creating it with
// defaults on first run. Environment variables override file values, so the
// file is applied first and the env pass wins.
func LoadConfigFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "sharebox", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	for _, key := range configKeys() {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			configMap[key] = value
		}
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	if _, err := configFile.WriteString(fmt.Sprintf(defaultConfigTemplate, uuid.New().String(), uuid.New().String())); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func configKeys() []string {
	return []string{
		"SESSION_SECRET", "JWT_SECRET", "JWT_REFRESH_SECRET",
		"SQLITE_PATH", "UPLOAD_PATH",
		"SERVER_ADDRESS", "FRONTEND_BASE_URL", "CORS_ALLOW_ORIGINS",
		"SMTP_SERVER", "SMTP_PORT", "SMTP_ACCOUNT", "SMTP_TOKEN", "SMTP_FROM",
		"MAX_FILE_SIZE", "MAX_TOTAL_STORAGE",
		"PORT", "ENABLE_GZIP",
	}
}

func applyConfigMap(configMap map[string]string) error {
	stringTargets := map[string]*string{
		"SESSION_SECRET":     &SessionSecret,
		"JWT_SECRET":         &JWTSecret,
		"SQLITE_PATH":        &SQLitePath,
		"UPLOAD_PATH":        &UploadPath,
		"SERVER_ADDRESS":     &ServerAddress,
		"FRONTEND_BASE_URL":  &FrontendBaseURL,
		"CORS_ALLOW_ORIGINS": &CORSAllowOrigins,
		"SMTP_SERVER":        &SMTPServer,
		"SMTP_ACCOUNT":       &SMTPAccount,
		"SMTP_TOKEN":         &SMTPToken,
		"SMTP_FROM":          &SMTPFrom,
	}
	for key, target := range stringTargets {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			*target = configValue
		}
	}

	// JWT_REFRESH_SECRET never falls back to JWT_SECRET: with equal
	// secrets a long-lived refresh token would verify as an access token.
	// Absent a configured value the random per-process default stands.
	if configValue, ok := configMap["JWT_REFRESH_SECRET"]; ok && configValue != "" {
		JWTRefreshSecret = configValue
	}

	if configValue, ok := configMap["SMTP_PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for SMTP_PORT: %w", err)
		}
		SMTPPort = portInt
	}

	if configValue, ok := configMap["MAX_FILE_SIZE"]; ok && configValue != "" {
		sizeInt, err := strconv.ParseInt(configValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for MAX_FILE_SIZE: %w", err)
		}
		MaxFileSize = sizeInt
	}

	if configValue, ok := configMap["MAX_TOTAL_STORAGE"]; ok && configValue != "" {
		sizeInt, err := strconv.ParseInt(configValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for MAX_TOTAL_STORAGE: %w", err)
		}
		MaxTotalStorage = sizeInt
	}

	if configValue, ok := configMap["PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	if configValue, ok := configMap["ENABLE_GZIP"]; ok && configValue != "" {
		enableGzipBool, err := strconv.ParseBool(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for ENABLE_GZIP: %w", err)
		}
		EnableGzip = enableGzipBool
	}

	return nil
}
