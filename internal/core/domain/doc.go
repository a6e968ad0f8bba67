// Package domain defines the core entities for briefdesk: topics,
// content items of the four managed kinds, and staged uploads.
// The domain layer has no dependencies on adapters or transports.
package domain
