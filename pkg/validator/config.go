package validator

// Config holds validator settings loadable from the environment with
// config.Load.
type Config struct {
	Mode     Mode   `env:"VALIDATOR_MODE" envDefault:"burst"`
	Language string `env:"VALIDATOR_LANGUAGE" envDefault:"en"`
	// AsyncBuffer sizes the Looper queue used for asynchronous passes.
	AsyncBuffer int `env:"VALIDATOR_ASYNC_BUFFER" envDefault:"16"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{Mode: Burst, Language: "en", AsyncBuffer: 16}
}
