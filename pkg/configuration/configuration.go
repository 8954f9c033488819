package configuration

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//go:generate go tool github.com/golang/mock/mockgen -source=configuration.go -destination ../mocks/configuration.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration/

type DefaultValueFunction func(existingValue interface{}) interface{}

type configType string

const inMemory configType = "in-memory"
const jsonFile configType = "json"

const defaultConfigName = "cybedefend"

// Configuration is an interface for managing configuration values.
type Configuration interface {
	Clone() Configuration

	Set(key string, value interface{})
	Unset(key string)
	Get(key string) interface{}
	IsSet(key string) bool
	GetString(key string) string
	GetStringSlice(key string) []string
	GetBool(key string) bool
	GetInt(key string) int
	GetFloat64(key string) float64
	GetUrl(key string) *url.URL

	AddFlagSet(flagset *pflag.FlagSet) error
	AllKeys() []string
	AddDefaultValue(key string, defaultValue DefaultValueFunction)
	AddAlternativeKeys(key string, altKeys []string)
	GetAlternativeKeys(key string) []string

	// PersistInStorage ensures that when Set or Unset is called with the given key, it will be persisted in the config file.
	PersistInStorage(key string)
	SetStorage(storage Storage)
	GetStorage() Storage
}

// extendedViper is a wrapper around the viper library.
// It adds support for default values and alternative keys.
type extendedViper struct {
	viper           *viper.Viper
	alternativeKeys map[string][]string
	defaultValues   map[string]DefaultValueFunction
	configType      configType

	// persistedKeys stores the keys that need to be persisted to storage when Set is called.
	// Only specific keys are persisted, so viper's native functionality is not used.
	persistedKeys map[string]bool
	storage       Storage
	mutex         sync.Mutex
}

// StandardDefaultValueFunction is a default value function that returns the default value if the existing value is nil.
func StandardDefaultValueFunction(defaultValue interface{}) DefaultValueFunction {
	return func(existingValue interface{}) interface{} {
		if existingValue != nil {
			return existingValue
		}
		return defaultValue
	}
}

// determineBasePath returns the directory that holds the persisted configuration.
func determineBasePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, defaultConfigName)
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homedir, ".config", defaultConfigName)
}

// CreateConfigurationFile creates an empty configuration file with the given name in the configuration directory.
func CreateConfigurationFile(filename string) (string, error) {
	configFile := filepath.Join(determineBasePath(), filename)

	err := os.MkdirAll(filepath.Dir(configFile), 0o700)
	if err != nil {
		return "", err
	}

	err = os.WriteFile(configFile, []byte{}, 0o600)
	if err != nil {
		return "", err
	}

	return configFile, nil
}

// New creates a new configuration backed by the cybedefend configuration file.
func New() Configuration {
	return NewFromFiles(defaultConfigName)
}

// NewFromFiles creates a new Configuration instance from the given files.
func NewFromFiles(files ...string) Configuration {
	config := createViperDefaultConfig()
	config.configType = jsonFile
	readConfigFilesIntoViper(files, config)
	return config
}

// NewInMemory creates a new Configuration instance that is not persisted to disk.
func NewInMemory() Configuration {
	config := createViperDefaultConfig()
	config.configType = inMemory
	config.storage = &EmptyStorage{}
	return config
}

func createViperDefaultConfig() *extendedViper {
	config := &extendedViper{
		viper:           viper.New(),
		alternativeKeys: make(map[string][]string),
		defaultValues:   make(map[string]DefaultValueFunction),
		persistedKeys:   make(map[string]bool),
	}
	config.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.viper.AutomaticEnv()
	return config
}

func readConfigFilesIntoViper(files []string, config *extendedViper) {
	configPath := determineBasePath()
	config.storage = createFileStorage(configPath)

	for _, file := range files {
		config.viper.SetConfigName(file)
	}

	config.viper.SetConfigType("json")
	config.viper.AddConfigPath(configPath)
	config.viper.AddConfigPath(".")

	_ = config.viper.ReadInConfig()
}

// Clone creates a copy of the current configuration.
func (ev *extendedViper) Clone() Configuration {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()

	clone := createViperDefaultConfig()
	clone.configType = ev.configType
	clone.storage = ev.storage

	keys := ev.viper.AllKeys()
	for i := range keys {
		if ev.viper.IsSet(keys[i]) {
			clone.viper.Set(keys[i], ev.viper.Get(keys[i]))
		}
	}

	for k, v := range ev.defaultValues {
		clone.defaultValues[k] = v
	}

	for k, v := range ev.alternativeKeys {
		clone.alternativeKeys[k] = v
	}

	for k, v := range ev.persistedKeys {
		clone.persistedKeys[k] = v
	}

	return clone
}

// Set sets a configuration value.
func (ev *extendedViper) Set(key string, value interface{}) {
	ev.mutex.Lock()
	ev.viper.Set(key, value)
	persist := ev.storage != nil && ev.persistedKeys[key]
	storage := ev.storage
	ev.mutex.Unlock()

	if persist {
		_ = storage.Set(key, value)
	}
}

// Unset removes an explicitly set value, falling back to environment or defaults.
func (ev *extendedViper) Unset(key string) {
	ev.mutex.Lock()
	ev.viper.Set(key, nil)
	persist := ev.storage != nil && ev.persistedKeys[key]
	storage := ev.storage
	ev.mutex.Unlock()

	if persist {
		_ = storage.Unset(key)
	}
}

func (ev *extendedViper) get(key string) interface{} {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()

	result := ev.viper.Get(key)
	if ev.viper.IsSet(key) {
		return result
	}

	for _, altKey := range ev.alternativeKeys[key] {
		if ev.viper.IsSet(altKey) {
			return ev.viper.Get(altKey)
		}
	}

	return result
}

// IsSet returns true if a value for the given key was explicitly set
func (ev *extendedViper) IsSet(key string) bool {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()

	if ev.viper.IsSet(key) {
		return true
	}

	for _, altKey := range ev.alternativeKeys[key] {
		if ev.viper.IsSet(altKey) {
			return true
		}
	}
	return false
}

// Get returns a configuration value.
func (ev *extendedViper) Get(key string) interface{} {
	value := ev.get(key)

	ev.mutex.Lock()
	defaultFunc := ev.defaultValues[key]
	ev.mutex.Unlock()

	if defaultFunc != nil {
		value = defaultFunc(value)
	}

	return value
}

// GetString returns a configuration value as string.
func (ev *extendedViper) GetString(key string) string {
	return cast.ToString(ev.Get(key))
}

// GetBool returns a configuration value as bool.
func (ev *extendedViper) GetBool(key string) bool {
	return cast.ToBool(ev.Get(key))
}

// GetInt returns a configuration value as int.
func (ev *extendedViper) GetInt(key string) int {
	return cast.ToInt(ev.Get(key))
}

// GetFloat64 returns a configuration value as float64.
func (ev *extendedViper) GetFloat64(key string) float64 {
	return cast.ToFloat64(ev.Get(key))
}

// GetUrl returns a configuration value as url.URL.
func (ev *extendedViper) GetUrl(key string) *url.URL {
	u, err := url.Parse(ev.GetString(key))
	if err != nil {
		return nil
	}
	return u
}

// GetStringSlice returns a configuration value as []string.
// Comma separated strings, as they come from environment variables, are split.
func (ev *extendedViper) GetStringSlice(key string) []string {
	result := ev.Get(key)
	if result == nil {
		return []string{}
	}

	if s, ok := result.(string); ok {
		if len(s) == 0 {
			return []string{}
		}
		return strings.Split(s, ",")
	}

	return cast.ToStringSlice(result)
}

// AddFlagSet adds a flag set to the configuration.
func (ev *extendedViper) AddFlagSet(flagset *pflag.FlagSet) error {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	return ev.viper.BindPFlags(flagset)
}

// AllKeys returns all keys of the configuration.
func (ev *extendedViper) AllKeys() []string {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()

	keys := ev.viper.AllKeys()
	for k := range ev.defaultValues {
		keys = append(keys, k)
	}
	return keys
}

// AddDefaultValue adds a default value to the configuration.
func (ev *extendedViper) AddDefaultValue(key string, defaultValue DefaultValueFunction) {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	ev.defaultValues[key] = defaultValue
}

// AddAlternativeKeys adds alternative keys to the configuration.
func (ev *extendedViper) AddAlternativeKeys(key string, altKeys []string) {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	ev.alternativeKeys[key] = altKeys
}

// GetAlternativeKeys returns alternative keys from the configuration.
func (ev *extendedViper) GetAlternativeKeys(key string) []string {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	return ev.alternativeKeys[key]
}

func (ev *extendedViper) PersistInStorage(key string) {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	ev.persistedKeys[key] = true
}

func (ev *extendedViper) SetStorage(storage Storage) {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	ev.storage = storage
}

func (ev *extendedViper) GetStorage() Storage {
	ev.mutex.Lock()
	defer ev.mutex.Unlock()
	return ev.storage
}

func createFileStorage(configPath string) Storage {
	return NewJsonStorage(filepath.Join(configPath, defaultConfigName+".json"))
}
