package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSuitePath is the default suite path
	DefaultSuitePath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "analysis-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
)

// DefaultSuiteExtensions are the file extensions treated as suite files.
var DefaultSuiteExtensions = []string{".robot", ".resource"}

// DefaultPathsToIgnore are the default directories to ignore when scanning
// for suite files
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"venv",
	"__pycache__",
	"output",
	"results",
	"storage",
}
