package config

const (
	// EngineSQLite selects the embedded sqlite driver.
	EngineSQLite = "sqlite"
	// EnginePostgres selects the postgres driver.
	EnginePostgres = "postgres"
	// EngineMySQL selects the mysql driver.
	EngineMySQL = "mysql"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite file, ":memory:" for a throwaway database
	GormEngine string // sqlite, postgres or mysql
	LogQueries bool   // log every sql statement on debug level
}
