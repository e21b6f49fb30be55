package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Defaults_matchDocumentedValues(t *testing.T) {
	c := Defaults()
	assert.Equal(t, "/var/log/radvisor/stats", c.Directory)
	assert.Equal(t, ColorAuto, c.Color)
}

func Test_Validate_rejectsBadValues(t *testing.T) {
	c := Defaults()
	c.Provider = ProviderDocker
	assert.NoError(t, c.Validate())

	bad := c
	bad.Directory = ""
	assert.Error(t, bad.Validate())

	bad = c
	bad.Interval = 0
	assert.Error(t, bad.Validate())

	bad = c
	bad.Color = "rainbow"
	assert.Error(t, bad.Validate())

	bad = c
	bad.Provider = ""
	assert.Error(t, bad.Validate())
}

func Test_DockerHost_readsEnv(t *testing.T) {
	t.Setenv("DOCKER_HOST", "tcp://example:2376")
	assert.Equal(t, "tcp://example:2376", DockerHost())
}
