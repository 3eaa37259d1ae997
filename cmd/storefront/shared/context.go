// Package shared holds the context passed to all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// StoreHome overrides the store home directory.
	// When empty, resolution falls through to STOREFRONT_HOME env var → persisted config → ~/.storefront.
	StoreHome string
}
