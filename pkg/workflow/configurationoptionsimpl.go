package workflow

import (
	"github.com/spf13/pflag"
)

type configurationOptionsImpl struct {
	flagset *pflag.FlagSet
}

func ConfigurationOptionsFromFlagset(flagset *pflag.FlagSet) ConfigurationOptions {
	return configurationOptionsImpl{flagset: flagset}
}

// FlagsetFromConfigurationOptions returns nil if param was not created from a flag set.
func FlagsetFromConfigurationOptions(param ConfigurationOptions) *pflag.FlagSet {
	if impl, ok := param.(configurationOptionsImpl); ok {
		return impl.flagset
	}
	return nil
}
