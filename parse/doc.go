// Package parse feeds an option registry from the outside world: command
// line arguments, config files, environment variables, literal maps, and
// default structs. Each input is a Source; Run merges them by priority
// into one raw key-to-value view and hands it to the registry, which owns
// recognition, conversion, and validation.
package parse
