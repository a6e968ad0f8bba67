// Package file provides the file-based configuration adapter.
// Settings live in a TOML file under the briefdesk config directory
// and cover the webhook base URL, session token, and staging paths.
package file
