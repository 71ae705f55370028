package database

type SourceRepository interface {
	GetSourceByDomain(domain string) (*Source, error)
	GetAllSources() ([]Source, error)
	GetSourceCount() (int, error)

	UpsertSource(domain string, score int, bias, category string) error
}
