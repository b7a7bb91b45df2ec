// Package generator provides the file-operation layer shared by every magic
// generator: operations that can be validated before execution, an executor
// that runs them, and conflict resolution for files that already exist.
package generator
