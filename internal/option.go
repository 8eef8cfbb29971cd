package internal

// Commands understood by Run.
const (
	CommandBuild     = "build"
	CommandNode      = "node"
	CommandChecksums = "checksums"
	CommandVerify    = "verify"
	CommandWatch     = "watch"
	CommandServe     = "serve"
	CommandMCP       = "mcp"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	configFile string
	command    string
	version    string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithConfigFile records where the configuration was loaded from so the
// preview server can keep it private.
func WithConfigFile(path string) Option {
	return func(a *application) {
		a.configFile = path
	}
}

// WithCommand selects what Run does. The default is CommandBuild.
func WithCommand(name string) Option {
	return func(a *application) {
		a.command = name
	}
}

// WithVersion sets the version reported to MCP clients.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}
