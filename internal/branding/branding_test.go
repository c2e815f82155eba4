package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvVar(t *testing.T) {
	assert.Equal(t, EnvPrefix()+"_ROOT", EnvVar("root"))
}

func TestServerListsAreCopies(t *testing.T) {
	cdn := CDNServers()
	if assert.NotEmpty(t, cdn) {
		cdn[0] = "mutated"
		assert.NotEqual(t, "mutated", CDNServers()[0])
	}
	assert.NotEmpty(t, WebServers())
}

func TestVersionIncludesCodename(t *testing.T) {
	assert.Contains(t, Version(), "(")
}
