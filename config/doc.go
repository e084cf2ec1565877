// Package config loads engine configuration for embedding applications:
// logging, executor pool sizing, and pipeline definition directories.
//
// Configuration comes from a YAML file, overridden by environment
// variables, optionally seeded from a .env file. Applications embed
// EngineConfig in their own config structs and pass the whole struct to
// Load.
package config
