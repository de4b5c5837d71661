package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`
}

// KeywordConfig names one keyword section and the filter terms that feed its
// search query. Multi-word terms match as phrases; terms are OR-combined.
type KeywordConfig struct {
	Name    string   `mapstructure:"name" json:"name" yaml:"name"`
	Filters []string `mapstructure:"filters" json:"filters" yaml:"filters"`
}

// OutputFlavor selects the markdown layout for an output target.
type OutputFlavor string

const (
	// FlavorTable renders one markdown table per keyword section.
	FlavorTable OutputFlavor = "table"

	// FlavorList renders one bullet line per paper, for surfaces that do
	// not display tables well.
	FlavorList OutputFlavor = "list"
)

// OutputTarget describes one published markdown file and the state file
// backing it. Each target is fully overwritten on every run.
type OutputTarget struct {
	// Name identifies the target in logs (e.g. "readme", "gitpage").
	Name string `mapstructure:"name" json:"name" yaml:"name"`

	// StatePath is the YAML file holding the target's persisted sections.
	StatePath string `mapstructure:"state_path" json:"state_path" yaml:"state_path"`

	// MarkdownPath is the rendered markdown file.
	MarkdownPath string `mapstructure:"markdown_path" json:"markdown_path" yaml:"markdown_path"`

	// Flavor selects table or list layout (default table).
	Flavor OutputFlavor `mapstructure:"flavor" json:"flavor" yaml:"flavor"`

	// ShowBadges prepends shields.io repository badges.
	ShowBadges bool `mapstructure:"show_badges" json:"show_badges" yaml:"show_badges"`

	// TOC emits an HTML table of contents over the keyword sections.
	TOC bool `mapstructure:"toc" json:"toc" yaml:"toc"`

	// BackToTop appends a back-to-top anchor after each section.
	BackToTop bool `mapstructure:"back_to_top" json:"back_to_top" yaml:"back_to_top"`

	// FrontMatter prepends a Jekyll front matter block (GitHub Pages).
	FrontMatter bool `mapstructure:"front_matter" json:"front_matter" yaml:"front_matter"`
}

// SummaryConfig holds settings for the optional AI summary stage. The stage
// is active only when a model and an API key are both available.
type SummaryConfig struct {
	// Enabled switches abstract summarization on.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// Model is the chat model identifier (e.g. "qwen-long").
	Model string `mapstructure:"model" json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`

	// APIKey authenticates the summary API. Usually supplied via the
	// .secrets/ directory rather than the config file.
	APIKey string `mapstructure:"api_key,omitempty" json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// Config is the full run configuration. Malformed configuration aborts the
// run before any network call.
type Config struct {
	// UserName is the repository owner used in badge URLs.
	UserName string `mapstructure:"user_name" json:"user_name" yaml:"user_name"`

	// RepoName is the repository name used in badge URLs.
	RepoName string `mapstructure:"repo_name" json:"repo_name" yaml:"repo_name"`

	// MaxResults caps the number of results fetched per keyword.
	MaxResults int `mapstructure:"max_results" json:"max_results" yaml:"max_results"`

	// Keywords lists the sections to build, in publication order.
	Keywords []KeywordConfig `mapstructure:"keywords" json:"keywords" yaml:"keywords"`

	// DateFrom/DateTo optionally restrict results by submission date
	// (YYYY-MM-DD). Empty means unbounded.
	DateFrom string `mapstructure:"date_from" json:"date_from" yaml:"date_from"`
	DateTo   string `mapstructure:"date_to" json:"date_to" yaml:"date_to"`

	// CodeLinks switches Papers With Code / GitHub repository resolution.
	CodeLinks bool `mapstructure:"code_links" json:"code_links" yaml:"code_links"`

	// Outputs lists the markdown files to publish.
	Outputs []OutputTarget `mapstructure:"outputs" json:"outputs" yaml:"outputs"`

	HTTP    HTTPConfig    `mapstructure:"http" json:"http" yaml:"http"`
	Summary SummaryConfig `mapstructure:"summary" json:"summary" yaml:"summary"`
}

const dateFmt = "2006-01-02"

// Validate checks the configuration before any network call. It returns a
// *ConfigError describing the first problem found.
func (c Config) Validate() error {
	if len(c.Keywords) == 0 {
		return &ConfigError{Field: "keywords", Reason: "at least one keyword is required"}
	}
	seen := make(map[string]bool, len(c.Keywords))
	for _, kw := range c.Keywords {
		if kw.Name == "" {
			return &ConfigError{Field: "keywords", Reason: "keyword with empty name"}
		}
		if seen[kw.Name] {
			return &ConfigError{Field: "keywords", Reason: "duplicate keyword " + kw.Name}
		}
		seen[kw.Name] = true
		if len(kw.Filters) == 0 {
			return &ConfigError{Field: "keywords", Reason: "keyword " + kw.Name + " has no filters"}
		}
	}
	if c.MaxResults <= 0 {
		return &ConfigError{Field: "max_results", Reason: "must be positive"}
	}
	if len(c.Outputs) == 0 {
		return &ConfigError{Field: "outputs", Reason: "at least one output target is required"}
	}
	for _, out := range c.Outputs {
		if out.StatePath == "" || out.MarkdownPath == "" {
			return &ConfigError{Field: "outputs", Reason: "target " + out.Name + " needs state_path and markdown_path"}
		}
		switch out.Flavor {
		case FlavorTable, FlavorList, "":
		default:
			return &ConfigError{Field: "outputs", Reason: "target " + out.Name + " has unknown flavor " + string(out.Flavor)}
		}
	}
	for _, d := range []string{c.DateFrom, c.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateFmt, d); err != nil {
			return &ConfigError{Field: "date_from/date_to", Reason: "invalid date " + d + " (want YYYY-MM-DD)"}
		}
	}
	return nil
}
