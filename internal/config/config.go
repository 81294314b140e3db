// Package config loads hoard's configuration from the hoard home directory.
//
// Priority (highest to lowest): environment variables (HOARD_*) > .env file in
// the hoard home > config.yaml > defaults. Values from the .env file never
// override variables already present in the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hoard/internal/logger"
	"hoard/internal/parameters"
)

const (
	// HomeEnvVar overrides the hoard home directory.
	HomeEnvVar = "HOARD_HOME"
	// EnvPrefix is the prefix of environment variables that override config keys.
	EnvPrefix = "HOARD"
	// ConfigFileName is the config file inside the hoard home.
	ConfigFileName = "config.yaml"
	// DotEnvFileName is the optional env file inside the hoard home.
	DotEnvFileName = ".env"
	// DefaultTroveFileName is the trove file used when trove_path is unset.
	DefaultTroveFileName = "trove.yml"
	// DefaultHomeDirName is the home directory name under the user's home.
	DefaultHomeDirName = ".hoard"
)

// Config keys.
const (
	KeyTrovePath            = "trove_path"
	KeyParameterToken       = "parameter_token"
	KeyParameterEndingToken = "parameter_ending_token"
	KeyEditor               = "editor"
	KeyTheme                = "theme"
	KeyLogLevel             = "log_level"
)

// Keys lists every config key in file order.
var Keys = []string{
	KeyTrovePath,
	KeyParameterToken,
	KeyParameterEndingToken,
	KeyEditor,
	KeyTheme,
	KeyLogLevel,
}

// ErrEmptyToken is returned when a parameter token would be set to an empty string.
var ErrEmptyToken = errors.New("parameter token cannot be empty")

// Config is the resolved configuration.
type Config struct {
	TrovePath            string `mapstructure:"trove_path" yaml:"trove_path"`
	ParameterToken       string `mapstructure:"parameter_token" yaml:"parameter_token"`
	ParameterEndingToken string `mapstructure:"parameter_ending_token" yaml:"parameter_ending_token"`
	Editor               string `mapstructure:"editor" yaml:"editor"`
	Theme                string `mapstructure:"theme" yaml:"theme"`
	LogLevel             string `mapstructure:"log_level" yaml:"log_level"`
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Fs is the filesystem holding the hoard home. Defaults to the OS filesystem.
	Fs afero.Fs
	// HomeDir overrides HOARD_HOME and ~/.hoard.
	HomeDir string
	// TrovePath overrides every other source for the trove location.
	TrovePath string
}

// Manager owns the viper instance and persists changes to config.yaml.
type Manager struct {
	fs     afero.Fs
	home   string
	v      *viper.Viper
	config Config
}

// HomeDir resolves the hoard home directory: override, then $HOARD_HOME, then ~/.hoard.
func HomeDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(userHome, DefaultHomeDirName), nil
}

// Load resolves the configuration from every source.
func Load(opts LoadOptions) (*Manager, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	home, err := HomeDir(opts.HomeDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetDefault(KeyTrovePath, filepath.Join(home, DefaultTroveFileName))
	v.SetDefault(KeyParameterToken, parameters.DefaultOpenToken)
	v.SetDefault(KeyParameterEndingToken, parameters.DefaultCloseToken)
	v.SetDefault(KeyEditor, "")
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "")

	configPath := filepath.Join(home, ConfigFileName)
	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file %s: %w", configPath, err)
	}
	if exists {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		logger.Debug("Loaded config file", "path", configPath)
	}

	if err := loadDotEnv(fs, filepath.Join(home, DotEnvFileName), v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.TrovePath != "" {
		v.Set(KeyTrovePath, opts.TrovePath)
	}

	m := &Manager{fs: fs, home: home, v: v}
	if err := v.Unmarshal(&m.config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if editor := m.config.Editor; editor == "" {
		m.config.Editor = firstNonEmpty(os.Getenv("VISUAL"), os.Getenv("EDITOR"))
	}
	return m, nil
}

// loadDotEnv reads HOARD_* values from the .env file into v. Keys already
// present in the process environment are skipped.
func loadDotEnv(fs afero.Fs, path string, v *viper.Viper) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for name, value := range envMap {
		key, ok := keyForEnv(name)
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// keyForEnv maps HOARD_TROVE_PATH to trove_path for known keys.
func keyForEnv(name string) (string, bool) {
	prefix := EnvPrefix + "_"
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	key := strings.ToLower(strings.TrimPrefix(name, prefix))
	for _, known := range Keys {
		if key == known {
			return key, true
		}
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Config returns a copy of the resolved configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Home returns the hoard home directory.
func (m *Manager) Home() string {
	return m.home
}

// Path returns the location of config.yaml.
func (m *Manager) Path() string {
	return filepath.Join(m.home, ConfigFileName)
}

// Fs returns the filesystem the configuration was read from.
func (m *Manager) Fs() afero.Fs {
	return m.fs
}

// SetParameterToken changes and persists the placeholder open token.
func (m *Manager) SetParameterToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := m.persist(KeyParameterToken, token); err != nil {
		return err
	}
	m.config.ParameterToken = token
	return nil
}

// SetParameterEndingToken changes and persists the placeholder close token.
func (m *Manager) SetParameterEndingToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := m.persist(KeyParameterEndingToken, token); err != nil {
		return err
	}
	m.config.ParameterEndingToken = token
	return nil
}

// persist writes a single key into config.yaml, keeping the other keys of the
// file as they are. Values that only came from the environment are not written.
func (m *Manager) persist(key, value string) error {
	path := m.Path()

	file := map[string]interface{}{}
	data, err := afero.ReadFile(m.fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if file == nil {
			file = map[string]interface{}{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	file[key] = value

	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := m.fs.MkdirAll(m.home, 0755); err != nil {
		return fmt.Errorf("failed to create hoard home %s: %w", m.home, err)
	}
	if err := afero.WriteFile(m.fs, path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	m.v.Set(key, value)
	logger.Debug("Persisted config value", "key", key, "path", path)
	return nil
}
