// Package connectors assembles the source providers used by the
// aggregation pipeline. Each subpackage implements driven.Provider for
// one external source; this package fixes their order and describes them
// for the CLI.
package connectors
