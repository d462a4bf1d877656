// Package scenario loads declarative stress scenarios and turns them into a
// populated World with a Scheduler of filter-driven systems.
package scenario

import (
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/sparsecs/ecs"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario describes a world to build and how long to drive it.
type Scenario struct {
	Seed       int64          `toml:"seed" yaml:"seed"`
	Entities   int            `toml:"entities" yaml:"entities"`
	Duration   time.Duration  `toml:"duration" yaml:"duration"`
	Tick       time.Duration  `toml:"tick" yaml:"tick"`
	Churn      float64        `toml:"churn" yaml:"churn"` // fraction of visited entities re-indexed per tick (0.0-1.0)
	Components []string       `toml:"components" yaml:"components"`
	Logging    LoggingConfig  `toml:"logging" yaml:"logging"`
	Systems    []SystemConfig `toml:"systems" yaml:"systems"`
}

type LoggingConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
}

// SystemConfig declares one system by its archetype filters. Filters are
// composed in the order All, Any, Exact, RejectAny, RejectAll; empty lists
// are skipped.
type SystemConfig struct {
	Name      string   `toml:"name" yaml:"name"`
	All       []string `toml:"all" yaml:"all"`
	Any       []string `toml:"any" yaml:"any"`
	Exact     []string `toml:"exact" yaml:"exact"`
	RejectAny []string `toml:"reject_any" yaml:"reject_any"`
	RejectAll []string `toml:"reject_all" yaml:"reject_all"`
	Ordered   bool     `toml:"ordered" yaml:"ordered"` // visit entities by ascending id
}

// Default returns the scenario used when no file is given.
func Default() *Scenario {
	return &Scenario{
		Seed:       1,
		Entities:   10000,
		Duration:   10 * time.Second,
		Tick:       0,
		Churn:      0.01,
		Components: []string{"position", "velocity", "health", "sprite", "ai", "player", "asleep"},
		Logging:    LoggingConfig{Level: "info"},
		Systems: []SystemConfig{
			{Name: "movement", All: []string{"position", "velocity"}, RejectAny: []string{"asleep"}},
			{Name: "render", All: []string{"position", "sprite"}, Ordered: true},
			{Name: "ai", All: []string{"ai"}, RejectAny: []string{"player"}},
			{Name: "regen", Any: []string{"health"}},
			{Name: "wake", All: []string{"asleep"}, RejectAll: []string{"ai", "player"}},
		},
	}
}

// Load reads a scenario from a .toml, .yaml or .yml file. Scalar fields and
// lists missing from the file keep their Default values; lists present in the
// file replace the defaults entirely.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read scenario %s", path)
	}

	defaults := Default()
	s := Default()
	// toml decodes arrays of tables into existing slice elements
	s.Components = nil
	s.Systems = nil

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, eris.Wrapf(err, "failed to decode toml scenario %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, eris.Wrapf(err, "failed to decode yaml scenario %s", path)
		}
	default:
		return nil, eris.Errorf("unsupported scenario format %q", ext)
	}

	if s.Components == nil {
		s.Components = defaults.Components
	}
	if s.Systems == nil {
		s.Systems = defaults.Systems
	}

	if err := s.Validate(); err != nil {
		return nil, eris.Wrapf(err, "invalid scenario %s", path)
	}
	return s, nil
}

// Validate checks that the scenario can be built.
func (s *Scenario) Validate() error {
	if s.Entities <= 0 {
		return eris.Errorf("entities must be positive, got %d", s.Entities)
	}
	if s.Churn < 0 || s.Churn > 1 {
		return eris.Errorf("churn must be within [0, 1], got %g", s.Churn)
	}
	if len(s.Components) == 0 {
		return eris.New("at least one component is required")
	}
	if len(s.Systems) == 0 {
		return eris.New("at least one system is required")
	}

	for i, sys := range s.Systems {
		if sys.Name == "" {
			return eris.Errorf("system %d has no name", i)
		}
		for _, list := range [][]string{sys.All, sys.Any, sys.Exact, sys.RejectAny, sys.RejectAll} {
			for _, name := range list {
				if !slices.Contains(s.Components, name) {
					return eris.Errorf("system %s uses unknown component %q", sys.Name, name)
				}
			}
		}
	}
	return nil
}

// Archetype builds the archetype declared by sys.
func (sys SystemConfig) Archetype() *ecs.Archetype {
	parts := make([]ecs.FilterSource, 0, 5)
	if len(sys.All) > 0 {
		parts = append(parts, ecs.All(sys.All...))
	}
	if len(sys.Any) > 0 {
		parts = append(parts, ecs.Any(sys.Any...))
	}
	if len(sys.Exact) > 0 {
		parts = append(parts, ecs.Exact(sys.Exact...))
	}
	if len(sys.RejectAny) > 0 {
		parts = append(parts, ecs.RejectAny(sys.RejectAny...))
	}
	if len(sys.RejectAll) > 0 {
		parts = append(parts, ecs.RejectAll(sys.RejectAll...))
	}
	return ecs.NewArchetype(parts...)
}

// Runtime is a built scenario.
type Runtime struct {
	World     *ecs.World[*ecs.Entity]
	Scheduler *ecs.Scheduler[*ecs.Entity]
	// Archetypes holds each system's archetype by system name.
	Archetypes map[string]*ecs.Archetype
	// Visits counts update calls per system name.
	Visits map[string]int
}

// Build creates a World and Scheduler with one system per SystemConfig.
// Each system counts its visits and, with probability Churn, toggles a random
// component on the visited entity and queues it for re-indexing.
func (s *Scenario) Build(rng *rand.Rand, logger *zap.Logger) *Runtime {
	world := ecs.NewWorld[*ecs.Entity](ecs.WithCapacity(s.Entities), ecs.WithLogger(logger))
	rt := &Runtime{
		World:      world,
		Scheduler:  ecs.NewScheduler(world),
		Archetypes: make(map[string]*ecs.Archetype, len(s.Systems)),
		Visits:     make(map[string]int, len(s.Systems)),
	}

	for _, cfg := range s.Systems {
		name := cfg.Name
		update := func(e *ecs.Entity, dt float64) {
			rt.Visits[name]++
			if s.Churn > 0 && rng.Float64() < s.Churn {
				toggle(e, s.Components[rng.Intn(len(s.Components))])
				rt.Scheduler.Commands().Reindex(e)
			}
		}

		opts := []ecs.SystemOption[*ecs.Entity]{ecs.WithName[*ecs.Entity](name)}
		if cfg.Ordered {
			opts = append(opts, ecs.WithOrder(func(a, b *ecs.Entity) bool {
				return a.Id() <= b.Id()
			}))
		}
		archetype := cfg.Archetype()
		rt.Archetypes[name] = archetype
		rt.Scheduler.Register(ecs.NewSystem(archetype, update, opts...))
	}

	logger.Info("scenario built",
		zap.Int("systems", len(s.Systems)),
		zap.Strings("components", s.Components),
	)
	return rt
}

// Populate adds Entities entities, each carrying between one and five
// distinct random components.
func (s *Scenario) Populate(rng *rand.Rand, world *ecs.World[*ecs.Entity]) {
	for range s.Entities {
		count := min(rng.Intn(5)+1, len(s.Components))
		e := ecs.NewEntity(nil)
		for _, idx := range rng.Perm(len(s.Components))[:count] {
			e.Set(s.Components[idx], struct{}{})
		}
		world.AddEntity(e)
	}
}

func toggle(e *ecs.Entity, name string) {
	if e.HasComponent(name) {
		e.Remove(name)
		return
	}
	e.Set(name, struct{}{})
}
