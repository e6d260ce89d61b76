package constants

const (
	AppName   = "payledger"
	EnvPrefix = "LEDGER"

	ConfigName = "config"
	ConfigType = "yaml"
	DBFileName = "payledger.db"
)

// Database drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
