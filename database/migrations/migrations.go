// Package migrations holds the schema changes for the store. Each file
// registers itself from init(); the CLI blank-imports this package.
package migrations
