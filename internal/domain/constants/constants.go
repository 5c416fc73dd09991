// Package constants holds shared domain-level constants.
package constants

// Pub/Sub provider names accepted by the pubsub configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
