package cfg

type Cfg struct {
	// Application configuration
	Port        string
	DBPath      string
	SourcesFile string
	WorkerCount int

	// Scraper configuration
	ScrapeTimeout int
	ScrapeRate    int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
