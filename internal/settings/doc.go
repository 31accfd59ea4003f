// Package settings loads strongly typed settings records from layered YAML
// configuration files and caller-supplied overrides.
//
// A record declares its schema through ordinary struct fields; the yaml tag
// names the key a field is populated from. Files are merged in the order they
// are given, later files winning over earlier ones, and overrides win over
// every file. Keys that do not belong to the schema are dropped silently, so
// several tools can share one configuration file. Fields typed time.Time,
// time.Duration, Period or DateOffset accept the human-readable spellings
// described on their coercion functions. Every non-pointer field must end up
// populated from some source; pointer fields are optional and stay nil when
// absent.
//
// Load performs a single synchronous pass with no caching: callers that need
// fresh values call it again.
package settings
