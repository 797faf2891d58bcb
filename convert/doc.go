// Package convert provides the generic value conversion facility used by
// the option registry: weakly typed decoding of raw parsed values into
// concrete Go types, and deep cloning of typed values.
package convert
