// Package config provides viper-backed configuration for the compliance
// ontology: where the ontology file lives, which serialization format is
// canonical, and where the optional SQLite projection is kept.
package config

// Config is the root configuration structure
type Config struct {
	Ontology OntologyConfig `mapstructure:"ontology"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// OntologyConfig controls graph persistence
type OntologyConfig struct {
	// Path to the canonical ontology file read by Load and written by Save
	Path string `mapstructure:"path"`
	// Format is the default serialization format (turtle, ntriples,
	// rdfxml, jsonld, n3, trig)
	Format string `mapstructure:"format"`
	// Namespace overrides the compliance namespace IRI; empty uses the
	// built-in namespace
	Namespace string `mapstructure:"namespace"`
}

// DatabaseConfig controls the optional SQLite attestation projection
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls logger initialization
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}
