// Package driven defines the outbound ports: interfaces the core
// services need implemented by infrastructure adapters (the webhook
// backend, staging persistence, configuration).
package driven
