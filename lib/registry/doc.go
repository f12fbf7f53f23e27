// Package registry keeps named collections for concurrent access, e.g. all documents
// loaded by "dcoll batch". The registry is backed by xsync.MapOf and tracks its size,
// lookups and misses in a go-metrics registry (see Stats and WriteStats).
package registry
