package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/chasedemo/internal/ai"
	"github.com/udisondev/chasedemo/internal/input"
)

// Host selects what drives the frame loop.
const (
	HostTerminal = "terminal"
	HostHeadless = "headless"
)

// Demo holds all configuration for the chase demo.
type Demo struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`

	// LogFile receives logs; empty means stdout, or chasedemo.log for the terminal host.
	LogFile string `yaml:"log_file"`

	// Host is "terminal" (interactive) or "headless" (scripted player).
	Host string `yaml:"host"`
	// HeadlessTicks stops a headless run after this many frames; 0 runs until interrupted.
	HeadlessTicks uint64 `yaml:"headless_ticks"`

	Tuning Tuning `yaml:"tuning"`
	Scene  Scene  `yaml:"scene"`

	// Commentary overrides built-in lines per event (enteredIdle, enteredChasing, ...).
	Commentary map[string][]string `yaml:"commentary"`

	Database DatabaseConfig `yaml:"database"`
	Feed     FeedConfig     `yaml:"feed"`
	Journal  JournalConfig  `yaml:"journal"`
}

// Tuning holds NPC thresholds and movement speeds.
type Tuning struct {
	SightDistance   float64 `yaml:"sight_distance"`
	AttackRange     float64 `yaml:"attack_range"`
	ChaseSpeed      float64 `yaml:"chase_speed"`       // units per tick
	PlayerMoveSpeed float64 `yaml:"player_move_speed"` // units per tick
}

// Point is a position in scene units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// NpcEntry places one chasing NPC.
type NpcEntry struct {
	Name     string `yaml:"name"`
	Position Point  `yaml:"position"`
}

// Scene holds the starting layout.
type Scene struct {
	GroundSize float64    `yaml:"ground_size"`
	Player     Point      `yaml:"player"`
	Npcs       []NpcEntry `yaml:"npcs"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the transition journal.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// FeedConfig controls the websocket spectator feed.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// QueueSize is the per-client outbox capacity; slow clients drop frames.
	QueueSize int `yaml:"queue_size"`
}

// JournalConfig controls asynchronous transition recording.
type JournalConfig struct {
	Buffer int `yaml:"buffer"`
}

// DefaultTerminalLogFile keeps logs off the screen the terminal host draws on.
const DefaultTerminalLogFile = "chasedemo.log"

// LogPath returns where logs go; empty means stdout.
func (c Demo) LogPath() string {
	if c.LogFile == "" && c.Host == HostTerminal {
		return DefaultTerminalLogFile
	}
	return c.LogFile
}

// DefaultDemo returns Demo config with the original scene: a 20x20 ground,
// the player sphere left of center and one NPC box to the right.
func DefaultDemo() Demo {
	return Demo{
		LogLevel:     "info",
		TickInterval: time.Second / 60,
		Host:         HostTerminal,
		Tuning: Tuning{
			SightDistance:   ai.DefaultSightDistance,
			AttackRange:     ai.DefaultAttackRange,
			ChaseSpeed:      ai.DefaultChaseSpeed,
			PlayerMoveSpeed: input.DefaultPlayerMoveSpeed,
		},
		Scene: Scene{
			GroundSize: 20,
			Player:     Point{X: -5, Y: 0.5, Z: 0},
			Npcs: []NpcEntry{
				{Name: "Box", Position: Point{X: 5, Y: 0.5, Z: 0}},
			},
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "chasedemo",
			Password: "chasedemo",
			DBName:   "chasedemo",
			SSLMode:  "disable",
		},
		Feed: FeedConfig{
			Addr:      "127.0.0.1:8080",
			QueueSize: 64,
		},
		Journal: JournalConfig{
			Buffer: 256,
		},
	}
}

// Validate checks values that would make the demo misbehave.
func (c Demo) Validate() error {
	var errs []error

	t := c.Tuning
	if t.SightDistance <= 0 {
		errs = append(errs, fmt.Errorf("tuning.sight_distance must be positive, got %v", t.SightDistance))
	}
	if t.AttackRange <= 0 {
		errs = append(errs, fmt.Errorf("tuning.attack_range must be positive, got %v", t.AttackRange))
	}
	if t.AttackRange >= t.SightDistance {
		errs = append(errs, fmt.Errorf("tuning.attack_range (%v) must be below sight_distance (%v)", t.AttackRange, t.SightDistance))
	}
	if t.ChaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("tuning.chase_speed must be positive, got %v", t.ChaseSpeed))
	}
	if t.PlayerMoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("tuning.player_move_speed must be positive, got %v", t.PlayerMoveSpeed))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval))
	}
	if c.Host != HostTerminal && c.Host != HostHeadless {
		errs = append(errs, fmt.Errorf("host must be %q or %q, got %q", HostTerminal, HostHeadless, c.Host))
	}
	if c.Scene.GroundSize <= 0 {
		errs = append(errs, fmt.Errorf("scene.ground_size must be positive, got %v", c.Scene.GroundSize))
	}
	if len(c.Scene.Npcs) == 0 {
		errs = append(errs, errors.New("scene.npcs must not be empty"))
	}
	if c.Journal.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("journal.buffer must be positive, got %d", c.Journal.Buffer))
	}
	if c.Feed.Enabled && c.Feed.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("feed.queue_size must be positive, got %d", c.Feed.QueueSize))
	}

	return errors.Join(errs...)
}

// LoadDemo loads demo config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadDemo(path string) (Demo, error) {
	cfg := DefaultDemo()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
