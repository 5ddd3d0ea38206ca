package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"host":       "dev.host",
	"port":       "dev.port",
	"static":     "dev.static",
	"hot-reload": "dev.hotReload",
	"mode":       "router.mode",
	"basename":   "router.basename",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// BindFlags binds the known flags present in fs to their configuration
// keys. A flag only overrides the file and environment when it was set.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
