// Package magic is the scaffolding CLI for the Magic application framework.
package magic

// Version is the CLI version reported by --version.
const Version = "0.4.0"
