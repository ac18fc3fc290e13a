// Package syncmap offers a minimal, generic, concurrency-safe map guarded by
// a sync.RWMutex.  The service uses it as the registry that binds dynamic
// tool names to chatflow IDs; the registry is populated at bootstrap and
// read-only afterwards.
package syncmap
