// Package appconf loads the planner configuration.
//
// Values come from compiled defaults, then an optional config.yml, then the
// process environment (optionally seeded from a .env file). Command-line flags
// are applied by the caller last. The result is validated using struct tags.
package appconf
