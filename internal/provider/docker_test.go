package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_stripNamePrefixes(t *testing.T) {
	got := stripNamePrefixes([]string{"/web-1", "/web-1/linked"})
	assert.Equal(t, []string{"web-1", "web-1/linked"}, got)
}

func Test_DockerProvider_implementsProvider(t *testing.T) {
	var _ Provider = (*DockerProvider)(nil)
}

func Test_KubernetesProvider_implementsProvider(t *testing.T) {
	var _ Provider = (*KubernetesProvider)(nil)
}
