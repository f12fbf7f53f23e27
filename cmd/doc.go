// Package cmd implements the command-line interface of dcoll. It loads documents
// (json, gob or binary) into collections and applies collection operations to them.
//
// The package is organized into several subpackages:
//
//   - coll: Commands operating on a single document (get, set, add, append, remove,
//     replace, search, keys, sort, reverse, filter, stats, pick, convert)
//   - batch: Loads many documents concurrently into a registry and prints a summary
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can also be set as environment variables with the prefix DCOLL_
// (e.g. DCOLL_KIND=list), also from .env and .env.local files.
//
// See dcoll -help for a list of all commands.
package cmd
