package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/cache"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/radvisor/radvisor/internal/target"
)

// KubernetesProvider lists running pods on this node from a
// cache.SharedInformer, following
// ENSIAS-3A-Projects-Projet-Federateur's PodInformer pattern: the informer
// does the slow API polling, Fetch just reads the already-synced local
// index.
type KubernetesProvider struct {
	kubeConfigPath string
	nodeName       string

	client   kubernetes.Interface
	informer cache.SharedIndexInformer
	stop     chan struct{}
}

// NewKubernetesProvider builds a provider bound to kubeConfigPath (empty
// string defers resolution to KUBECONFIG / ~/.kube/config / in-cluster,
// following podtool/app.go's buildConfig order).
func NewKubernetesProvider(kubeConfigPath string) *KubernetesProvider {
	return &KubernetesProvider{kubeConfigPath: kubeConfigPath}
}

func (p *KubernetesProvider) Initialize(ctx context.Context) error {
	cfg, err := p.buildConfig()
	if err != nil {
		return fmt.Errorf("kubernetes provider: build config: %w", err)
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return fmt.Errorf("kubernetes provider: create clientset: %w", err)
	}
	p.client = cs

	nodeName, err := p.resolveNodeName(ctx)
	if err != nil {
		return fmt.Errorf("kubernetes provider: resolve node name: %w", err)
	}
	p.nodeName = nodeName

	factory := informers.NewSharedInformerFactory(cs, 0)
	p.informer = factory.Core().V1().Pods().Informer()
	p.stop = make(chan struct{})

	go p.informer.Run(p.stop)
	if !cache.WaitForCacheSync(ctx.Done(), p.informer.HasSynced) {
		return fmt.Errorf("kubernetes provider: informer cache did not sync")
	}
	return nil
}

// resolveNodeName determines the local node's name the way a DaemonSet pod
// must: HOSTNAME (set by the kubelet to the pod's hostname, which for a
// hostNetwork DaemonSet pod is the node's own hostname) is the ground-truth
// name to start from, but it isn't guaranteed to match the Node object's
// registered name, so it's confirmed against the API server rather than
// trusted blindly. Falls back to os.Hostname() only if HOSTNAME is unset,
// then tries a direct Get before falling back to a label-selector List
// against the kubernetes.io/hostname label.
func (p *KubernetesProvider) resolveNodeName(ctx context.Context) (string, error) {
	candidate := os.Getenv("HOSTNAME")
	if candidate == "" {
		candidate, _ = os.Hostname()
	}
	if candidate == "" {
		return "", fmt.Errorf("cannot determine local hostname")
	}

	if _, err := p.client.CoreV1().Nodes().Get(ctx, candidate, metav1.GetOptions{}); err == nil {
		return candidate, nil
	}

	nodes, err := p.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("kubernetes.io/hostname=%s", candidate),
	})
	if err != nil {
		return "", fmt.Errorf("node lookup for hostname %q: %w", candidate, err)
	}
	if len(nodes.Items) == 0 {
		return "", fmt.Errorf("no node found matching hostname %q", candidate)
	}
	return nodes.Items[0].Name, nil
}

// buildConfig prefers an explicit kubeConfigPath, then KUBECONFIG, then
// ~/.kube/config, then in-cluster config — the same order as
// podtool/app.go's buildConfig, extended with the CLI's explicit
// -k/--kube-config flag taking first priority.
func (p *KubernetesProvider) buildConfig() (*rest.Config, error) {
	path := p.kubeConfigPath
	if path == "" {
		if env := os.Getenv("KUBECONFIG"); env != "" {
			path = env
		} else if home := homedir.HomeDir(); home != "" {
			path = filepath.Join(home, ".kube", "config")
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if cfg, err := clientcmd.BuildConfigFromFlags("", path); err == nil {
				return cfg, nil
			}
		}
	}

	return rest.InClusterConfig()
}

func (p *KubernetesProvider) Fetch(_ context.Context) ([]target.Target, error) {
	polledAt := time.Now()
	var out []target.Target
	for _, obj := range p.informer.GetIndexer().List() {
		pod, ok := obj.(*corev1.Pod)
		if !ok {
			continue
		}
		if pod.Spec.NodeName != p.nodeName {
			continue
		}
		if pod.Status.Phase != corev1.PodRunning {
			continue
		}
		out = append(out, target.Target{
			ID:       string(pod.UID),
			Kind:     target.KindKubernetes,
			PolledAt: polledAt,
			Kubernetes: &target.KubernetesMetadata{
				Name:        pod.Name,
				Namespace:   pod.Namespace,
				Node:        pod.Spec.NodeName,
				UID:         string(pod.UID),
				QoSClass:    string(pod.Status.QOSClass),
				Phase:       string(pod.Status.Phase),
				Labels:      pod.Labels,
				Annotations: pod.Annotations,
				Created:     pod.CreationTimestamp.Time,
			},
		})
	}
	return out, nil
}

func (p *KubernetesProvider) Close() error {
	if p.stop != nil {
		close(p.stop)
	}
	return nil
}
