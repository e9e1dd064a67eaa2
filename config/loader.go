package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LOGZ_LOG_DIR
const EnvPrefix = "LOGZ"

// ConfigPaths defines the paths to look for logz.yaml
var ConfigPaths = []string{
	".",
	"./configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
}

// flagKeys maps flag names to configuration keys
var flagKeys = map[string]string{
	"name":                     "name",
	"level":                    "level",
	"format":                   "format",
	"logdir":                   "log_dir",
	"logfilepathname":          "log_file",
	"testexceptionspecified":   "test.exception_specified",
	"testexceptionunspecified": "test.exception_unspecified",
}

// flagAliases maps the short long-form spellings to their canonical flag
var flagAliases = map[string]string{
	"lfpn": "logfilepathname",
	"tes":  "testexceptionspecified",
	"teu":  "testexceptionunspecified",
}

// RegisterFlags defines the logz flags on fs. --lfpn, --tes and --teu are
// accepted as aliases.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(normalizeFlag)

	fs.String("config", "", "path to a logz.yaml configuration file")
	fs.String("name", "", "logger name")
	fs.String("level", "", "minimum level: debug, info, warning, error, critical")
	fs.String("format", "", "file format: text or json")
	fs.String("logdir", "", "directory for a timestamped log file")
	fs.String("logfilepathname", "", "log file path (alias --lfpn)")
	fs.Bool("testexceptionspecified", false, "exercise the reported failure path (alias --tes)")
	fs.Bool("testexceptionunspecified", false, "exercise the unexpected failure path (alias --teu)")
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// Load reads configuration with precedence flags > environment > config
// file > defaults. fs must already be parsed; a nil fs skips flags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// Missing .env files are not an error
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("logz")
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config into struct")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "error reading env file %s", path)
		}
		return errors.Wrapf(godotenv.Load(path), "error parsing env file %s", path)
	}
	return os.ErrNotExist
}

// setDefaults registers every key so environment overrides apply
func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "root")
	v.SetDefault("level", "debug")
	v.SetDefault("format", "text")
	v.SetDefault("log_dir", "")
	v.SetDefault("log_file", "")

	v.SetDefault("rotation.max_size_mb", 0) // disabled
	v.SetDefault("rotation.max_backups", 0)
	v.SetDefault("rotation.max_age_days", 0)
	v.SetDefault("rotation.compress", false)

	v.SetDefault("test.exception_specified", false)
	v.SetDefault("test.exception_unspecified", false)
}
