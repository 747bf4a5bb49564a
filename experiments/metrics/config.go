package metrics

// AgentConfig describes one computer player taking part in an experiment.
type AgentConfig struct {
	ID         int    `yaml:"id"`
	Depth      int    `yaml:"depth"`
	DrawPolicy string `yaml:"draw_policy,omitempty"`
	Simulator  string `yaml:"simulator,omitempty"`
	Goroutines int    `yaml:"goroutines,omitempty"`
}
