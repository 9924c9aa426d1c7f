// Package config loads the connection and logging settings of the sqlrecord
// command from a YAML file layered with SQLRECORD_* environment variables.
package config

// Supported driver kinds.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config is the top-level configuration.
type Config struct {
	Driver string       `yaml:"driver" env:"SQLRECORD_DRIVER"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	Log    LogConfig    `yaml:"log"`
}

// MySQLConfig holds the credentials of a networked MySQL server.
type MySQLConfig struct {
	Host     string `yaml:"host" env:"SQLRECORD_MYSQL_HOST"`
	User     string `yaml:"user" env:"SQLRECORD_MYSQL_USER"`
	Password string `yaml:"password,omitempty" env:"SQLRECORD_MYSQL_PASSWORD"`
	Database string `yaml:"database" env:"SQLRECORD_MYSQL_DATABASE"`
}

// SQLiteConfig points at a local database file.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLRECORD_SQLITE_PATH"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"SQLRECORD_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"SQLRECORD_LOG_PRETTY"`
}

// Default returns the configuration used when no file is given: an
// in-memory SQLite database and warn level logging.
func Default() *Config {
	return &Config{
		Driver: DriverSQLite,
		MySQL: MySQLConfig{
			Host: "localhost",
		},
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
		Log: LogConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}
