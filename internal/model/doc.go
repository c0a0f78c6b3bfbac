// Package model provides the in-memory representation of a provisioning
// document.
//
// A Model is an ordered list of features. Each feature owns run modes, and
// each run mode owns artifact groups, settings and OSGi configurations:
//
//	Model
//	  Feature (name, type, version, variables, additional sections)
//	    RunMode (names, settings)
//	      ArtifactGroup (start level)
//	        Artifact (mvn coordinates, metadata)
//	      Configuration (pid, factory pid, properties)
//
// A run mode without names is the default run mode. A run mode with a single
// name starting with ":" is a special run mode (for example ":remove").
//
// Stored order is significant everywhere: features, run modes, artifacts and
// configurations are kept in the order they were read or merged.
package model
