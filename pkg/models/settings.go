package models

// Settings represents the application configuration
type Settings struct {
	API     APISettings     `yaml:"api" koanf:"api"`
	Share   ShareSettings   `yaml:"share" koanf:"share"`
	Author  AuthorSettings  `yaml:"author" koanf:"author"`
	Logging LoggingSettings `yaml:"logging" koanf:"logging"`
	UI      UISettings      `yaml:"ui" koanf:"ui"`
}

// APISettings points the client at the remote catalog service
type APISettings struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	Demo    bool   `yaml:"demo" koanf:"demo"` // serve from the built-in catalog instead
}

// ShareSettings controls how shareable links are built
type ShareSettings struct {
	PageURL string `yaml:"page_url" koanf:"page_url"`
}

// AuthorSettings identifies the local user when uploading prompts
type AuthorSettings struct {
	ID string `yaml:"id" koanf:"id"`
}

// LoggingSettings controls log output
type LoggingSettings struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"` // "console" or "json"
	File   string `yaml:"file" koanf:"file"`
}

// UISettings controls UI preferences
type UISettings struct {
	RenderMarkdown    bool `yaml:"render_markdown" koanf:"render_markdown"`
	ShowTokenEstimate bool `yaml:"show_token_estimate" koanf:"show_token_estimate"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			BaseURL: "https://prompt.harshiitkgp.in/api",
		},
		Share: ShareSettings{
			PageURL: "https://prompt.harshiitkgp.in/",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
		UI: UISettings{
			RenderMarkdown:    false,
			ShowTokenEstimate: true,
		},
	}
}
