// Package config loads provider settings from the environment.
//
// Load parses environment variables into any struct with caarlos0/env tags.
// A .env file in the working directory is read once, before the first parse,
// and never overrides variables that are already set. The result is cached
// per type, so every provider constructor that asks for the same config type
// sees the same values.
//
//	import (
//		"github.com/dmitrymomot/mailer/core/config"
//		"github.com/dmitrymomot/mailer/integration/email/ses"
//		"github.com/dmitrymomot/mailer/pkg/ratelimiter"
//	)
//
//	var sesCfg ses.Config
//	if err := config.Load(&sesCfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Panics instead, for startup code
//	var rateCfg ratelimiter.Config
//	config.MustLoad(&rateCfg)
//
// With a .env file such as:
//
//	AWS_SES_REGION=eu-west-1
//	AWS_SES_MAX_ATTEMPTS=5
//	EMAIL_RATE_CAPACITY=50
//	EMAIL_RATE_REFILL=50
//
// # Caching
//
// Changing the environment after the first Load of a type has no effect on
// that type. Distinct types are parsed independently, so ses.Config and
// smtp.Config can be loaded in any order. ses.NewFromEnv is a thin wrapper
// over Load followed by ses.New.
package config
