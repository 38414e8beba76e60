package registry

import (
	"fmt"
	"net"
	"strconv"

	consulapi "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

type consulRegistry struct {
	client *consulapi.Client
	logger *zap.SugaredLogger
}

var _ ServiceRegistry = (*consulRegistry)(nil)

// NewConsulRegistry connects to the Consul agent at address and checks
// that it answers.
func NewConsulRegistry(address string, logger *zap.SugaredLogger) (ServiceRegistry, error) {
	consulConfig := consulapi.DefaultConfig()
	consulConfig.Address = address

	client, err := consulapi.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	if _, err := client.Agent().NodeName(); err != nil {
		return nil, fmt.Errorf("cannot connect to consul agent at %s: %w", address, err)
	}
	logger.Infow("Connected to Consul agent", "address", address)

	return &consulRegistry{client: client, logger: logger.Named("consul")}, nil
}

func (r *consulRegistry) Register(reg *consulapi.AgentServiceRegistration) error {
	if err := r.client.Agent().ServiceRegister(reg); err != nil {
		return fmt.Errorf("failed to register service %q: %w", reg.ID, err)
	}
	r.logger.Infow("Registered service", "service_id", reg.ID, "address", reg.Address, "port", reg.Port)
	return nil
}

func (r *consulRegistry) Deregister(id string) error {
	if err := r.client.Agent().ServiceDeregister(id); err != nil {
		return fmt.Errorf("failed to deregister service %q: %w", id, err)
	}
	r.logger.Infow("Deregistered service", "service_id", id)
	return nil
}

// Discover returns passing instances only. An instance without its own
// address is reached through its node's address.
func (r *consulRegistry) Discover(name string, tag string) ([]string, error) {
	entries, _, err := r.client.Health().Service(name, tag, true, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover service %q: %w", name, err)
	}

	addrs := make([]string, 0, len(entries))
	for _, entry := range entries {
		host := entry.Service.Address
		if host == "" {
			host = entry.Node.Address
		}
		addrs = append(addrs, net.JoinHostPort(host, strconv.Itoa(entry.Service.Port)))
	}
	return addrs, nil
}
