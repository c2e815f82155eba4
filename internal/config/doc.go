// Package config manages user settings stored in settings.yaml inside the
// install root. It loads the file and COLLAPSE_* environment overrides through
// Viper and exposes a typed Options view (sort policy, hidden clients, network
// timeout, server lists).
package config
