package cfg

type Cfg struct {
	// Storage
	DBPath string

	// Scan input (one-shot CLI mode when either is set)
	Companies     string
	CompaniesFile string
	Output        string

	// Application configuration
	ConfigPath   string
	Port         string
	WorkerCount  int
	APIAccessKey string

	// Source credentials (optional sources stay disabled without them)
	GoogleCSEID  string
	GoogleAPIKey string
	SerpAPIKey   string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
