// Package config defines the application configuration structures and the
// loading logic that populates them from environment variables and an
// optional config file. Configuration is validated at load time; a service
// with invalid configuration refuses to start.
package config
