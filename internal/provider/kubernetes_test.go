package provider

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_resolveNodeName_directGetMatch(t *testing.T) {
	t.Setenv("HOSTNAME", "node-a")
	cs := fake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "node-a"},
	})

	p := &KubernetesProvider{client: cs}
	name, err := p.resolveNodeName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "node-a", name)
}

func Test_resolveNodeName_fallsBackToHostnameLabel(t *testing.T) {
	t.Setenv("HOSTNAME", "ip-10-0-0-1")
	cs := fake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   "node-b.internal",
			Labels: map[string]string{"kubernetes.io/hostname": "ip-10-0-0-1"},
		},
	})

	p := &KubernetesProvider{client: cs}
	name, err := p.resolveNodeName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "node-b.internal", name)
}

func Test_resolveNodeName_noMatchingNode(t *testing.T) {
	t.Setenv("HOSTNAME", "unregistered-host")
	cs := fake.NewSimpleClientset()

	p := &KubernetesProvider{client: cs}
	_, err := p.resolveNodeName(context.Background())
	assert.Error(t, err)
}
