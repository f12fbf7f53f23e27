package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// CLI configuration struct
// --------------------------------------------------------------------------

// Config holds all configuration parameters of the dcoll cli
type Config struct {
	// Kind of the collection documents are loaded into (array, map, list, set)
	Kind string
	// Format of input and output documents (json, gob, binary)
	Format string

	// Input file ("-" or empty for stdin)
	Input string
	// Output file ("-" or empty for stdout)
	Output string

	// Lock the collection after loading
	ReadOnly bool

	// Seed for the weighted random selection (0 for a random seed)
	Seed uint64

	// Write prometheus metrics to stderr after the command
	Metrics bool

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	orStd := func(path, std string) string {
		if path == "" || path == "-" {
			return std
		}
		return path
	}

	addSection("Collection")
	addField("Kind", c.Kind)
	addField("Read-only", fmt.Sprintf("%t", c.ReadOnly))
	if c.Seed == 0 {
		addField("Seed", "random")
	} else {
		addField("Seed", fmt.Sprintf("%d", c.Seed))
	}

	addSection("IO")
	addField("Format", c.Format)
	addField("Input", orStd(c.Input, "stdin"))
	addField("Output", orStd(c.Output, "stdout"))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	return sb.String()
}
