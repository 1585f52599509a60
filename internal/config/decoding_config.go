package config

import (
	"strconv"

	"github.com/rs/zerolog"
)

const (
	validateSchemaEnvVar = "OAUTH2_VALIDATE_SCHEMA"
	logLevelEnvVar       = "OAUTH2_LOG_LEVEL"
)

type DecodingConfig interface {
	GetValidateSchema() bool
	GetLogLevel() zerolog.Level
}

type Decoding struct{}

var _ DecodingConfig = Decoding{}

// GetValidateSchema reports whether grant requests are checked against their
// JSON schema before being decoded. Off unless OAUTH2_VALIDATE_SCHEMA is true.
func (Decoding) GetValidateSchema() bool {
	enabled, err := strconv.ParseBool(GetEnv(validateSchemaEnvVar, "false"))
	if err != nil {
		return false
	}
	return enabled
}

// GetLogLevel is the level dispatch events are written at.
func (Decoding) GetLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(GetEnv(logLevelEnvVar, "debug"))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return level
}
