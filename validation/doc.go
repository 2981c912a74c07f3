// Package validation checks seqkit configuration and command input.
//
// Struct tags are validated with go-playground/validator. Field paths in
// error messages follow the mapstructure tag names used by the config
// loader, so a bad nested value is reported as "logging.level".
//
//	type LimitsConfig struct {
//	    MaxBuffer int `mapstructure:"max_buffer" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// Values that do not live in a struct, such as command-line flags, are
// collected with a Validator:
//
//	v := validation.New()
//	v.Min("top", top, 0)
//	err := v.Err()
package validation
