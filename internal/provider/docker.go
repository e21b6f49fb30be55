package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/radvisor/radvisor/internal/config"
	"github.com/radvisor/radvisor/internal/target"
)

// DockerProvider lists running containers from a Docker daemon. Grounded on
// other_examples' docker-stats.go CollectSnapshots: client.Client +
// container.ListOptions + cli.ContainerList.
type DockerProvider struct {
	cli    *client.Client
	driver target.Driver
}

// NewDockerProvider builds a provider that dials the Docker daemon at
// DOCKER_HOST (default unix:///var/run/docker.sock). config.DockerHost is
// the single place that reads the environment variable; when it's unset,
// construction falls back to client.FromEnv's own resolution so a bare
// empty string never overrides the SDK's default socket.
func NewDockerProvider() (*DockerProvider, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if host := config.DockerHost(); host != "" {
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker provider: create client: %w", err)
	}
	return &DockerProvider{cli: cli}, nil
}

func (p *DockerProvider) Initialize(ctx context.Context) error {
	if _, err := p.cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker provider: ping: %w", err)
	}
	info, err := p.cli.Info(ctx)
	if err != nil {
		return fmt.Errorf("docker provider: info: %w", err)
	}
	if strings.Contains(strings.ToLower(info.CgroupDriver), "systemd") {
		p.driver = target.DriverSystemd
	} else {
		p.driver = target.DriverCgroupfs
	}
	return nil
}

func (p *DockerProvider) Fetch(ctx context.Context) ([]target.Target, error) {
	containers, err := p.cli.ContainerList(ctx, container.ListOptions{All: false})
	if err != nil {
		return nil, fmt.Errorf("docker provider: list containers: %w", err)
	}

	polledAt := time.Now()
	out := make([]target.Target, 0, len(containers))
	for _, c := range containers {
		ports := make([]string, 0, len(c.Ports))
		for _, port := range c.Ports {
			ports = append(ports, fmt.Sprintf("%d/%s", port.PrivatePort, port.Type))
		}

		out = append(out, target.Target{
			ID:           c.ID,
			Kind:         target.KindDocker,
			CgroupDriver: p.driver,
			PolledAt:     polledAt,
			Docker: &target.DockerMetadata{
				Image:   c.Image,
				Command: c.Command,
				Names:   stripNamePrefixes(c.Names),
				Labels:  c.Labels,
				Ports:   ports,
				Status:  c.Status,
				SizeRw:  c.SizeRw,
				Created: time.Unix(c.Created, 0),
			},
		})
	}
	return out, nil
}

func (p *DockerProvider) Close() error {
	return p.cli.Close()
}

func stripNamePrefixes(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimPrefix(n, "/")
	}
	return out
}
