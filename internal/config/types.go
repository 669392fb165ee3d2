package config

// FileName is the configuration file chore looks for, walking upward from
// the working directory.
const FileName = "chore.toml"

// Config represents the complete chore configuration.
type Config struct {
	App     AppConfig         `toml:"app"`
	Secrets map[string]Secret `toml:"secrets"`
	Tasks   map[string]Task   `toml:"tasks"`

	// TaskOrder and SecretOrder hold table names in declaration order.
	// TOML maps lose ordering; help text and the palette need it stable.
	TaskOrder   []string `toml:"-"`
	SecretOrder []string `toml:"-"`
}

// AppConfig defines the [app] identity section.
type AppConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
}

// Task defines a named, ordered list of shell commands exposed as a command.
// A task with no cmds is accepted at load time and fails when invoked.
type Task struct {
	Desc   string   `toml:"desc"`
	Silent bool     `toml:"silent"`
	Cmds   []string `toml:"cmds"`
}

// Secret declares an environment variable validated by the setup command.
type Secret struct {
	Label       string `toml:"label"`
	Required    bool   `toml:"required"`
	Description string `toml:"description"`
	Default     string `toml:"default"`
}

// DisplayLabel returns the human label for a secret, falling back to the
// environment variable name.
func (s Secret) DisplayLabel(envName string) string {
	if s.Label != "" {
		return s.Label
	}
	return envName
}
