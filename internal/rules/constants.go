package rules

// Python version tiers recognized by the version rule.
const (
	CurrentPythonVersionConstant    = "3.13"
	AcceptablePythonVersionConstant = "3.12"
)

// Check categories shared across rule functions and orchestration checks.
const (
	CategoryConfigurationConstant  = "Configuration"
	CategoryCodeQualityConstant    = "Code Quality"
	CategoryTestingConstant        = "Testing"
	CategoryDocumentationConstant  = "Documentation"
	CategoryCICDConstant           = "CI/CD"
	CategoryInfrastructureConstant = "Infrastructure"
)

const lineLengthTargetConstant = 120

// RequiredRepositoryKeywords lists the repository-type keywords at least one
// of which must be declared in the manifest or as a GitHub topic.
var RequiredRepositoryKeywords = []string{
	"python-lib",
	"python-stack",
	"python-app",
	"python-shared",
	"composite-app",
}

// RequiredPoetryPlugins lists the plugins that must appear in the Poetry
// requires-plugins table.
var RequiredPoetryPlugins = []string{
	"poetry-plugin-export",
	"poetry-plugin-shell",
	"ld-poetry-export-group-plugin",
}

var poetryVersionPatterns = []string{">=2.1", ">=2.0", "^2"}

var ruffTargetVersions = []string{"py313", "py312"}
