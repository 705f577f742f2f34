package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. CHAPTERLINT_REPO_ROOT.
const envPrefix = "CHAPTERLINT"

// loadSettings configures v from, in priority order, the --config flag,
// $CHAPTERLINT_CONFIG, or .chapterlint.yaml in the working directory, and
// enables CHAPTERLINT_* environment overrides. A missing default file is
// not an error; an explicitly named file that cannot be read is.
func loadSettings(v *viper.Viper, cfgFile string, logger *slog.Logger) error {
	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv(envPrefix + "_CONFIG")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".chapterlint")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return &ContextError{Op: "loading config", Path: configName(v, explicit), Err: err}
	}
	logger.Debug("using config file", "path", v.ConfigFileUsed())
	return nil
}

func configName(v *viper.Viper, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return v.ConfigFileUsed()
}

// bindFlags makes the command's flags visible through v so that a set flag
// beats the environment, which beats the config file, which beats the flag default.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}
