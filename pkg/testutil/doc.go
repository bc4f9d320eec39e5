// Package testutil provides utilities for testing myglob components.
//
// Key components:
//   - TestEnvironment: builds a directory tree either in memory (afero) or
//     in a real temporary directory, and hands back the matching FS
//   - FaultyFS: a testify mock wrapped around any FS that fails ReadDir
//     for chosen paths and records every listing
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated only when the behavior depends on the OS (permissions,
//     symbolic links)
//   - All test trees should be defined inline, not in external files
package testutil
