package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the routine seed file.
type Config struct {
	UserID   string        `yaml:"user_id"  env:"SEEDER_USER_ID"`
	DryRun   bool          `yaml:"dry_run"  env:"SEEDER_DRY_RUN"`
	Routines []RoutineSeed `yaml:"routines"`
}

// RoutineSeed describes one routine template. ID is optional; when empty a
// stable ID is derived from the owner and the name so reruns update in place.
type RoutineSeed struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Exercises []ExerciseSeed `yaml:"exercises"`
}

// ExerciseSeed is one exercise of a seeded routine.
type ExerciseSeed struct {
	Name string `yaml:"name"`
	Sets int    `yaml:"sets"`
	Reps int    `yaml:"reps"`
}

// LoadConfig reads the seed file at path. Environment variables override
// the scalar settings.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("seeder config: path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
	}
	return &cfg, nil
}
