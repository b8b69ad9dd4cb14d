package spec

// Config is the top-level judgebench configuration file.
type Config struct {
	Version  int                 `yaml:"version" json:"version"`
	Client   ClientConfig        `yaml:"client" json:"client"`
	Datasets map[string]Dataset `yaml:"datasets" json:"datasets"`
}

// Dataset maps category names to experiment settings.
type Dataset map[string]ExperimentConfig

// ClientConfig describes the chat-completion endpoint shared by every role.
type ClientConfig struct {
	BaseURL        string   `yaml:"base_url" json:"base_url"`
	User           string   `yaml:"user" json:"user"`
	Tags           []string `yaml:"tags" json:"tags"`
	TimeoutSeconds int      `yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxRetries     *int     `yaml:"max_retries" json:"max_retries"`
	SystemPrompt   string   `yaml:"system_prompt" json:"system_prompt"`
}

// ExperimentConfig selects the question source, models, and output tables
// for one dataset category.
type ExperimentConfig struct {
	DataSource    string   `yaml:"data_source" json:"data_source"`
	LLMs          []string `yaml:"llms" json:"llms"`
	Judges        []string `yaml:"judges" json:"judges"`
	TiebreakJudge string   `yaml:"tiebreak_judge" json:"tiebreak_judge"`
	ResponsePath  string   `yaml:"response_path" json:"response_path"`
	JudgementPath string   `yaml:"judgement_path" json:"judgement_path"`
	PlotsDir      string   `yaml:"plots_dir" json:"plots_dir"`
}
