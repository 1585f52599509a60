package config

// Config carries the defaults the decoders fall back to when no option overrides them.
type Config interface {
	DecodingConfig
}

type mainConfig struct {
	Decoding
}

func New() Config {
	return mainConfig{}
}
