// Package constants holds the names shared by config and the providers that read it.
package constants

// Session persistence drivers
const (
	SessionDriverMemory   = "memory"
	SessionDriverFile     = "file"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

// Account backend providers
const (
	BackendProviderLocal    = "local"
	BackendProviderFirebase = "firebase"
)
