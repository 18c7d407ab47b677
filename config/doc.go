// Package config loads spscbench run configuration.
//
// A configuration file is JSON or YAML, picked by extension. Loading layers
// three sources, later ones winning:
//
//  1. Default()
//  2. the file, checked against the embedded JSON schema before decoding
//  3. SPSCBENCH_<SECTION>_<FIELD> environment variables
//
// The merged result then goes through Config.Validate for constraints the
// schema cannot express. Every failure is an invalid-class error from the
// errors package wrapping ErrInvalidConfig or ErrConfigNotFound.
//
// Example file:
//
//	scenario:
//	  name: paced
//	  items: 100000
//	  rate: 50000
//	  burst: 64
//	queue:
//	  slots: 256
//	  mode: single-core
//	  backoff:
//	    initial_delay: 1us
//	    max_delay: 500us
//	latency:
//	  window: 2048
//	metrics:
//	  enabled: true
//	  port: 9090
//
// Durations accept Go duration strings or integer nanoseconds.
package config
