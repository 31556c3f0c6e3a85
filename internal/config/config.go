package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Keys accepted in the prefs file, as KCALS_* environment variables and as key=value arguments
const (
	KeyMetric          = "metric"
	KeyRunning         = "running"
	KeyWeight          = "weight"
	KeyFiltering       = "filtering"
	KeyXYFilter        = "xy_filter"
	KeyResolution      = "resolution"
	KeyFormat          = "format"
	KeyDEM             = "dem"
	KeyServerMax       = "server_max"
	KeyServerMaxPoints = "server_max_points"
	KeyPort            = "port"
	KeyDBPath          = "db_path"
	KeyJWTSecret       = "jwt_secret"
	KeyRateLimit       = "rate_limit"
)

// EnvPrefix is prepended to every key to form its environment variable
const EnvPrefix = "KCALS"

// ErrIllegalParameter is returned for a key=value argument with an unknown key or bad syntax
var ErrIllegalParameter = errors.New("illegal parameter")

// Config is the full application configuration
type Config struct {
	Params Params

	Format  string // input track format for the CLI
	DEMPath string // ESRI ASCII grid used when a track has no elevations

	Port      string
	DBPath    string
	JWTSecret string // bearer auth is disabled when empty
	RateLimit int    // requests per minute per client IP
}

type rawConfig struct {
	Metric          bool    `mapstructure:"metric"`
	Running         bool    `mapstructure:"running"`
	Weight          float64 `mapstructure:"weight"`
	Filtering       float64 `mapstructure:"filtering"`
	XYFilter        float64 `mapstructure:"xy_filter"`
	Resolution      float64 `mapstructure:"resolution"`
	Format          string  `mapstructure:"format"`
	DEM             string  `mapstructure:"dem"`
	ServerMax       float64 `mapstructure:"server_max"`
	ServerMaxPoints int     `mapstructure:"server_max_points"`
	Port            string  `mapstructure:"port"`
	DBPath          string  `mapstructure:"db_path"`
	JWTSecret       string  `mapstructure:"jwt_secret"`
	RateLimit       int     `mapstructure:"rate_limit"`
}

var assignment = regexp.MustCompile(`^\s*(\w+)\s*=\s*(\S+)\s*$`)

// DefaultPrefsPath is ~/.kcals, or "" when the home directory is unknown
func DefaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kcals")
}

// Load builds the configuration from, in increasing precedence, built-in defaults, the prefs
// file at prefsPath (a properties file of key=value lines, optional), KCALS_* environment
// variables and the key=value overrides.
func Load(prefsPath string, overrides []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if prefsPath != "" {
		v.SetConfigFile(prefsPath)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", prefsPath, err)
			}
			log.Printf("[Config] File %s doesn't exist, so default values have been assumed for all parameters.", prefsPath)
		} else if err := checkKeys(v.AllKeys(), prefsPath); err != nil {
			return nil, err
		}
	}

	for _, s := range overrides {
		key, value, err := ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		v.Set(key, value)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg := &Config{
		Params: Params{
			Metric:          raw.Metric,
			Running:         raw.Running,
			BodyMass:        raw.Weight,
			OscH:            raw.Filtering,
			XYFilter:        raw.XYFilter,
			Resolution:      raw.Resolution,
			ServerMax:       raw.ServerMax,
			ServerMaxPoints: raw.ServerMaxPoints,
		},
		Format:    strings.ToLower(raw.Format),
		DEMPath:   raw.DEM,
		Port:      raw.Port,
		DBPath:    raw.DBPath,
		JWTSecret: raw.JWTSecret,
		RateLimit: raw.RateLimit,
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseAssignment splits a "key=value" argument and checks the key is known
func ParseAssignment(s string) (key, value string, err error) {
	m := assignment.FindStringSubmatch(s)
	if m == nil {
		return "", "", fmt.Errorf("%w: illegal syntax %q", ErrIllegalParameter, s)
	}
	key = strings.ToLower(m[1])
	if !knownKey(key) {
		return "", "", fmt.Errorf("%w %s: %q", ErrIllegalParameter, key, s)
	}
	return key, m[2], nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultParams()
	v.SetDefault(KeyMetric, d.Metric)
	v.SetDefault(KeyRunning, d.Running)
	v.SetDefault(KeyWeight, d.BodyMass)
	v.SetDefault(KeyFiltering, d.OscH)
	v.SetDefault(KeyXYFilter, d.XYFilter)
	v.SetDefault(KeyResolution, d.Resolution)
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyDEM, "")
	v.SetDefault(KeyServerMax, d.ServerMax)
	v.SetDefault(KeyServerMaxPoints, d.ServerMaxPoints)
	v.SetDefault(KeyPort, ":8080")
	v.SetDefault(KeyDBPath, "./data/tracks/tracks.db")
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyRateLimit, 60)
}

func knownKey(key string) bool {
	switch key {
	case KeyMetric, KeyRunning, KeyWeight, KeyFiltering, KeyXYFilter, KeyResolution, KeyFormat,
		KeyDEM, KeyServerMax, KeyServerMaxPoints, KeyPort, KeyDBPath, KeyJWTSecret, KeyRateLimit:
		return true
	}
	return false
}

func checkKeys(keys []string, where string) error {
	for _, k := range keys {
		if !knownKey(k) {
			return fmt.Errorf("%w %s in %s", ErrIllegalParameter, k, where)
		}
	}
	return nil
}
