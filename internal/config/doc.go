// Package config loads the optional tool configuration file.
//
// Example .provisioning-mapper.yaml:
//
//	charset: ISO-8859-1
//	scanConcurrency: 8
//	runModes: [prod, publish]
//	log:
//	  verbosity: 1
//	  development: false
//
// Command line flags take precedence over file values.
package config
