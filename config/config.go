package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config pre-filled with the progression rules the
// platform ships with. A config file only needs to override what differs.
func Default() *Config {
	return &Config{
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 30,
		},
		Progression: ProgressionConfig{
			SpecialTypes:    []int{2, 3},
			LevelMap:        map[string]int{"2": 2, "3": 3},
			GraduatedStatus: "LULUS_KEGIATAN",
		},
	}
}

type Config struct {
	Log         LogConfig         `toml:"log"`
	Web         WebConfig         `toml:"web"`
	DB          DBConfig          `toml:"db"`
	Auth        AuthConfig        `toml:"auth"`
	Spaces      SpacesConfig      `toml:"spaces"`
	Progression ProgressionConfig `toml:"progression"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	AllowOrigins string `toml:"allow_origins"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}

// ProgressionConfig drives the registration status-transition workflow.
// SpecialTypes lists the activity types that confer a level upgrade on
// graduation, LevelMap maps an activity type to the level it confers, and
// GraduatedStatus is the status value that triggers the upgrade.
//
// LevelMap keys are strings because TOML tables only key on strings; use
// LevelFor to look up by activity type.
type ProgressionConfig struct {
	SpecialTypes    []int          `toml:"special_types"`
	LevelMap        map[string]int `toml:"level_map"`
	GraduatedStatus string         `toml:"graduated_status"`
}

func (p ProgressionConfig) IsSpecial(activityType int) bool {
	for _, t := range p.SpecialTypes {
		if t == activityType {
			return true
		}
	}
	return false
}

func (p ProgressionConfig) LevelFor(activityType int) (int, bool) {
	level, ok := p.LevelMap[fmt.Sprintf("%d", activityType)]
	return level, ok
}
