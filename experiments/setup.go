package experiments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"connect4/experiments/metrics"
	"connect4/meta"
	"connect4/searcher"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSetup = errors.New("invalid experiment setup")

// Setup defines a tournament between computer players.
type Setup struct {
	Name    string                `yaml:"name"`
	Games   int                   `yaml:"games"` // per match up
	Columns int                   `yaml:"columns,omitempty"`
	Rows    int                   `yaml:"rows,omitempty"`
	Seed    uint64                `yaml:"seed,omitempty"` // 0 leaves games unseeded
	Agents  []metrics.AgentConfig `yaml:"agents"`
	// MatchUps pairs agent IDs, red first. Every ordered pair plays when empty.
	MatchUps [][]int `yaml:"matchups,omitempty"`
}

func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("failed to read setup: %w", err)
	}
	return ParseSetup(data)
}

func ParseSetup(data []byte) (Setup, error) {
	var setup Setup
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&setup); err != nil {
		if errors.Is(err, io.EOF) {
			return Setup{}, fmt.Errorf("%w: empty setup", ErrInvalidSetup)
		}
		return Setup{}, fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	setup.applyDefaults()
	return setup, setup.Validate()
}

func (s *Setup) applyDefaults() {
	if s.Name == "" {
		s.Name = "custom"
	}
	if s.Columns == 0 {
		s.Columns = meta.DEFAULT_COLUMNS
	}
	if s.Rows == 0 {
		s.Rows = meta.DEFAULT_ROWS
	}
	for i := range s.Agents {
		if s.Agents[i].DrawPolicy == "" {
			s.Agents[i].DrawPolicy = searcher.PenalizeDraws.String()
		}
		if s.Agents[i].Simulator == "" {
			s.Agents[i].Simulator = searcher.CopyOnWrite.String()
		}
		if s.Agents[i].Goroutines == 0 {
			s.Agents[i].Goroutines = 1
		}
	}
	if len(s.MatchUps) == 0 {
		for _, red := range s.Agents {
			for _, yellow := range s.Agents {
				if red.ID != yellow.ID {
					s.MatchUps = append(s.MatchUps, []int{red.ID, yellow.ID})
				}
			}
		}
	}
}

func (s Setup) Validate() error {
	var problems *multierror.Error
	if s.Games < 1 {
		problems = multierror.Append(problems, fmt.Errorf("games must be positive, got %d", s.Games))
	}
	if s.Columns < 1 || s.Rows < 1 {
		problems = multierror.Append(problems, fmt.Errorf("board must be at least 1x1, got %dx%d", s.Columns, s.Rows))
	}
	if len(s.Agents) == 0 {
		problems = multierror.Append(problems, errors.New("no agents"))
	}

	ids := map[int]bool{}
	for _, config := range s.Agents {
		if ids[config.ID] {
			problems = multierror.Append(problems, fmt.Errorf("agent %d is defined twice", config.ID))
		}
		ids[config.ID] = true
		if _, err := searchOptions(config); err != nil {
			problems = multierror.Append(problems, fmt.Errorf("agent %d: %w", config.ID, err))
		}
	}
	for _, matchUp := range s.MatchUps {
		if len(matchUp) != 2 {
			problems = multierror.Append(problems, fmt.Errorf("match up %v must name two agents", matchUp))
			continue
		}
		for _, id := range matchUp {
			if !ids[id] {
				problems = multierror.Append(problems, fmt.Errorf("match up %v names unknown agent %d", matchUp, id))
			}
		}
	}
	if len(s.MatchUps) == 0 && len(s.Agents) > 0 {
		problems = multierror.Append(problems, errors.New("no match ups, define at least two agents"))
	}

	if problems.ErrorOrNil() == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSetup, problems)
}

func (s Setup) agent(id int) metrics.AgentConfig {
	for _, config := range s.Agents {
		if config.ID == id {
			return config
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}

// searchOptions translates a config into searcher options, without an identity.
func searchOptions(config metrics.AgentConfig) ([]searcher.Option, error) {
	if config.Depth < 1 {
		return nil, fmt.Errorf("depth must be positive, got %d", config.Depth)
	}
	if config.Goroutines < 0 {
		return nil, fmt.Errorf("goroutines must not be negative, got %d", config.Goroutines)
	}
	drawPolicy, err := searcher.ParseDrawPolicy(config.DrawPolicy)
	if err != nil {
		return nil, err
	}
	simulator, err := searcher.ParseSimulator(config.Simulator)
	if err != nil {
		return nil, err
	}

	return []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithDrawPolicy(drawPolicy),
		searcher.WithSimulator(simulator),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}, nil
}
