// Package filesystem provides sandboxed markdown file operations.
//
// This package is organized into specialized modules:
//   - basic: Core file operations (read, create, update, delete)
//   - directory: Directory operations (list, mkdir)
//   - transfer: File manipulation (rename, move, copy, backup)
//   - metadata: File metadata and markdown structure analysis
//   - search: Content/filename search, glob matching, recent files
//
// All operations:
//   - Resolve every path argument through the sandbox before touching disk
//   - Never operate on an unresolved caller-supplied token
//   - Return structured data maps; failures are typed OpError values
//
// A whole-sandbox mutex serializes handler bodies, so two operations can
// never race on the same file. Destructive operations re-check existence
// immediately before acting; the small window between that check and the
// filesystem call is a documented residual risk.
package filesystem
