// Package registration manages the single persisted key/value record that
// tells the session login process which shell executable to run.
//
// The core only triggers "set to self" and "restore to default" against
// this record; it never reads or caches the value. The real registry-backed
// implementation is an external collaborator; this package provides a
// disabled no-op store for safe/dev/test mode and a file-backed store for
// development use.
package registration
