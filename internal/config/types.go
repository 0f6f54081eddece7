package config

import "time"

type Config struct {
	Port                   string
	Environment            string
	LogLevel               string
	JWTSecret              string
	DatabaseURL            string
	CORSOrigins            []string
	ServiceName            string
	OTLPEndpoint           string
	LegacyMalformedMessage bool
	RequestTimeout         time.Duration
	ShutdownTimeout        time.Duration
}

// command line overrides for the server binary
type Flags struct {
	Port                   string
	LegacyMalformedMessage bool
}
