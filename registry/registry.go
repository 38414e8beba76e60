package registry

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// ServiceRegistry defines the interface for service registration and discovery.
type ServiceRegistry interface {
	// Register adds (or replaces) one service instance.
	Register(reg *consulapi.AgentServiceRegistration) error

	// Deregister removes a service instance using its unique ID.
	Deregister(id string) error

	// Discover finds healthy instances of a service by name and optional tag.
	// Returns a list of "host:port" strings.
	Discover(name string, tag string) ([]string, error)
}

// Endpoints describes where this process can be reached.
type Endpoints struct {
	Host     string
	HTTPPort int
	GRPCPort int
}

// Announce registers the HTTP and gRPC endpoints under serviceName, each
// with its own health check, and returns a function deregistering both.
// A failed gRPC registration rolls back the HTTP one.
func Announce(r ServiceRegistry, serviceName string, ep Endpoints, checkInterval string, logger *zap.Logger) (func(), error) {
	httpID := instanceID(serviceName, "http", ep.Host, ep.HTTPPort)
	grpcID := instanceID(serviceName, "grpc", ep.Host, ep.GRPCPort)

	httpReg := &consulapi.AgentServiceRegistration{
		ID:      httpID,
		Name:    serviceName,
		Tags:    []string{"http"},
		Address: ep.Host,
		Port:    ep.HTTPPort,
		Meta:    map[string]string{"protocol": "http"},
		Check:   CreateHTTPCheck(httpID, ep.Host, ep.HTTPPort, "/health", checkInterval, "1s"),
	}
	grpcReg := &consulapi.AgentServiceRegistration{
		ID:      grpcID,
		Name:    serviceName,
		Tags:    []string{"grpc"},
		Address: ep.Host,
		Port:    ep.GRPCPort,
		Meta:    map[string]string{"protocol": "grpc"},
		Check:   CreateGRPCCheck(grpcID, fmt.Sprintf("%s:%d", ep.Host, ep.GRPCPort), checkInterval, "1s", false),
	}

	if err := r.Register(httpReg); err != nil {
		return nil, err
	}
	if err := r.Register(grpcReg); err != nil {
		if derr := r.Deregister(httpID); derr != nil {
			logger.Warn("Failed to roll back HTTP registration", zap.String("service_id", httpID), zap.Error(derr))
		}
		return nil, err
	}
	logger.Info("Service announced", zap.String("service", serviceName), zap.Strings("ids", []string{httpID, grpcID}))

	return func() {
		for _, id := range []string{grpcID, httpID} {
			if err := r.Deregister(id); err != nil {
				logger.Warn("Failed to deregister service", zap.String("service_id", id), zap.Error(err))
			}
		}
	}, nil
}

func instanceID(name, protocol, host string, port int) string {
	return fmt.Sprintf("%s-%s-%s-%d", name, protocol, host, port)
}

// CreateHTTPCheck builds a Consul HTTP health check against checkPath.
func CreateHTTPCheck(serviceID, host string, port int, checkPath string, interval, timeout string) *consulapi.AgentServiceCheck {
	return &consulapi.AgentServiceCheck{
		CheckID:                        fmt.Sprintf("check_%s", serviceID),
		Name:                           fmt.Sprintf("HTTP Check for %s", serviceID),
		HTTP:                           fmt.Sprintf("http://%s:%d%s", host, port, checkPath),
		Method:                         "GET",
		Interval:                       interval,
		Timeout:                        timeout,
		DeregisterCriticalServiceAfter: "1m",
	}
}

// CreateGRPCCheck builds a Consul check that speaks the gRPC health protocol.
func CreateGRPCCheck(serviceID, target string, interval, timeout string, useTLS bool) *consulapi.AgentServiceCheck {
	return &consulapi.AgentServiceCheck{
		CheckID:                        fmt.Sprintf("check_%s", serviceID),
		Name:                           fmt.Sprintf("gRPC Check for %s", serviceID),
		GRPC:                           target,
		GRPCUseTLS:                     useTLS,
		Interval:                       interval,
		Timeout:                        timeout,
		DeregisterCriticalServiceAfter: "1m",
	}
}
