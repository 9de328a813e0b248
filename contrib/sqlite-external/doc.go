// Package sqliteexternal links the CGO SQLite driver
// (github.com/mattn/go-sqlite3) into rubykit.
//
// It is only compiled with the cgo_sqlite build tag:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/rubykit
//
// Without the tag, core/sqlite uses the pure Go modernc.org/sqlite driver,
// which keeps cross-compilation and single-binary deployment simple. The CGO
// driver is faster on large document stores.
package sqliteexternal
