package sitegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	ConfigFileName  = "config.json"
	ConfigEnvPrefix = "SITEGEN"

	KeyPostsDir      = "posts dir"
	KeyIncludeBefore = "include before"
	KeyIncludeAfter  = "include after"
	KeyStaticSrc     = "static src"
	KeyStaticDest    = "static dest"
)

// Config is read once from ${src}/config.json.
// Missing keys are left empty.
type Config struct {
	PostsDir      string `mapstructure:"posts dir"`
	IncludeBefore string `mapstructure:"include before"`
	IncludeAfter  string `mapstructure:"include after"`
	StaticSrc     string `mapstructure:"static src"`
	StaticDest    string `mapstructure:"static dest"`
}

// LoadConfig reads ${root}/config.json from fs.
// Each key can be overridden from the environment,
// e.g. "posts dir" with SITEGEN_POSTS_DIR.
func LoadConfig(fs afero.Fs, root string) (Config, error) {
	path := filepath.Join(root, ConfigFileName)

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	for _, key := range []string{
		KeyPostsDir,
		KeyIncludeBefore,
		KeyIncludeAfter,
		KeyStaticSrc,
		KeyStaticDest,
	} {
		v.SetDefault(key, "")
	}

	v.SetEnvPrefix(ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(" ", "_"))
	v.AutomaticEnv()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Config{}, newBuildError(ErrConfig, path, err)
	}
	if !exists {
		return Config{}, newBuildError(ErrConfig, path, fmt.Errorf("couldn't find %s, does it exist?", ConfigFileName))
	}
	if err := v.ReadInConfig(); err != nil {
		return Config{}, newBuildError(ErrConfig, path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, newBuildError(ErrConfig, path, err)
	}

	return c, nil
}
