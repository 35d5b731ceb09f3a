package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/snake/pathfind"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Control string

const (
	ControlPlayer   Control = "player"
	ControlComputer Control = "computer"
)

type Selector string

const (
	SelectorNearest Selector = "nearest"
	SelectorScript  Selector = "script"
)

type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type FieldSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SnakeDefaults struct {
	StartLength  int `yaml:"start_length"`
	GrowthOnFeed int `yaml:"growth_on_feed"`
}

type SnakeSpec struct {
	Name      string             `yaml:"name"`
	Control   Control            `yaml:"control"`
	X         float64            `yaml:"x"`
	Y         float64            `yaml:"y"`
	Direction pathfind.Direction `yaml:"direction"`
}

type FoodSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Count  int     `yaml:"count"`
}

type CoinSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Chance     float64 `yaml:"chance"`
	TTLSeconds Range   `yaml:"ttl_seconds"`
}

type BombSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Max          int     `yaml:"max"`
	FirstSeconds Range   `yaml:"first_seconds"`
	NextSeconds  Range   `yaml:"next_seconds"`
}

type AISpec struct {
	Selector Selector `yaml:"selector"`
	Script   string   `yaml:"script"`
	Debug    bool     `yaml:"debug"`
}

// GameSpec is the tuning of one game: field, snakes, spawn rules and AI.
type GameSpec struct {
	Name     string        `yaml:"name"`
	Field    FieldSpec     `yaml:"field"`
	TickRate int           `yaml:"tick_rate"`
	Seed     uint64        `yaml:"seed"`
	Snake    SnakeDefaults `yaml:"snake"`
	Snakes   []SnakeSpec   `yaml:"snakes"`
	Food     FoodSpec      `yaml:"food"`
	Coin     CoinSpec      `yaml:"coin"`
	Bomb     BombSpec      `yaml:"bomb"`
	AI       AISpec        `yaml:"ai"`
}

// LoadGameSpec loads and validates a game spec, "game" by default.
func LoadGameSpec(name string) (*GameSpec, error) {
	if name == "" {
		name = "game.yaml"
	}
	spec, err := LoadSpec[GameSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: invalid %s: %w", name, err)
	}
	return &spec, nil
}

// ParseGameSpec decodes and validates a spec from raw YAML.
func ParseGameSpec(data []byte) (*GameSpec, error) {
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal game spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) Validate() error {
	var errs []error
	if s.Field.Width < 1 || s.Field.Height < 1 {
		errs = append(errs, fmt.Errorf("field must be at least 1x1, got %gx%g", s.Field.Width, s.Field.Height))
	}
	if s.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", s.TickRate))
	}
	if s.Snake.StartLength < 1 {
		errs = append(errs, fmt.Errorf("snake.start_length must be positive, got %d", s.Snake.StartLength))
	}
	if s.Snake.GrowthOnFeed < 0 {
		errs = append(errs, fmt.Errorf("snake.growth_on_feed must not be negative, got %d", s.Snake.GrowthOnFeed))
	}
	if len(s.Snakes) == 0 {
		errs = append(errs, errors.New("at least one snake is required"))
	}
	names := make(map[string]bool, len(s.Snakes))
	for i, sn := range s.Snakes {
		if sn.Name == "" {
			errs = append(errs, fmt.Errorf("snakes[%d]: name is required", i))
		} else if names[sn.Name] {
			errs = append(errs, fmt.Errorf("snakes[%d]: duplicate name %q", i, sn.Name))
		}
		names[sn.Name] = true
		if sn.Control != ControlPlayer && sn.Control != ControlComputer {
			errs = append(errs, fmt.Errorf("snakes[%d]: unknown control %q", i, sn.Control))
		}
		if sn.Direction == pathfind.None {
			errs = append(errs, fmt.Errorf("snakes[%d]: direction is required", i))
		}
	}
	if s.Food.Width <= 0 || s.Food.Height <= 0 || s.Food.Count < 1 {
		errs = append(errs, errors.New("food needs a positive size and count"))
	}
	if s.Coin.Width <= 0 || s.Coin.Height <= 0 {
		errs = append(errs, errors.New("coin needs a positive size"))
	}
	if s.Coin.Chance < 0 || s.Coin.Chance > 1 {
		errs = append(errs, fmt.Errorf("coin.chance must be within [0,1], got %g", s.Coin.Chance))
	}
	if s.Bomb.Width <= 0 || s.Bomb.Height <= 0 {
		errs = append(errs, errors.New("bomb needs a positive size"))
	}
	if s.Bomb.Max < 0 {
		errs = append(errs, fmt.Errorf("bomb.max must not be negative, got %d", s.Bomb.Max))
	}
	for name, r := range map[string]Range{
		"coin.ttl_seconds":   s.Coin.TTLSeconds,
		"bomb.first_seconds": s.Bomb.FirstSeconds,
		"bomb.next_seconds":  s.Bomb.NextSeconds,
	} {
		if r.Min < 0 || r.Max < r.Min {
			errs = append(errs, fmt.Errorf("%s: invalid range [%d,%d]", name, r.Min, r.Max))
		}
	}
	switch s.AI.Selector {
	case "", SelectorNearest:
	case SelectorScript:
		if s.AI.Script == "" {
			errs = append(errs, errors.New("ai.script is required with the script selector"))
		}
	default:
		errs = append(errs, fmt.Errorf("ai.selector: unknown selector %q", s.AI.Selector))
	}
	return errors.Join(errs...)
}
