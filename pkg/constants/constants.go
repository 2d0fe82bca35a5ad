package constants

import "time"

const (
	// ServiceName OpenTelemetry service name
	ServiceName = "autoqa"
	// MysqlMaxIdleConnection max mysql idle connections.
	MysqlMaxIdleConnection = 25
	// MysqlMaxOpenConnection max mysql open connections.
	MysqlMaxOpenConnection = 25
	// MysqlMaxConnectionLifetime max mysql connection lifetime.
	MysqlMaxConnectionLifetime = 5 * time.Minute
	// DefaultShutDownDelay is the delay before the http server stops accepting connections
	DefaultShutDownDelay = 5e9 // 5 seconds, value is int64 nanoseconds due to issue in viper.
	// DefaultGracefulTimeout is default timeout for graceful shutdown of the app.
	DefaultGracefulTimeout = 3e10 // 30 seconds
	// Base10 is used in parsing ints from string
	Base10 = 10
	// BitSize64 represent bitSize 64 of integers in which the result of parsing strings must fit into
	BitSize64 = 64
	// DefaultPageSize is the default number of records per listing page.
	DefaultPageSize = 10
	// MaxPageSize is the maximum number of records per listing page.
	MaxPageSize = 100
	// GraphVisualizationDayCount defines number of days of data returned by dashboard graph APIs.
	GraphVisualizationDayCount = 29
)

// All possible env values
const (
	Dev   = "dev"
	Prod  = "prod"
	Stage = "stage"
)

// BinaryVersion specifies the version of the running binary, set at build time.
var BinaryVersion string
