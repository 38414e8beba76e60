package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRegistry struct {
	services  map[string]*consulapi.AgentServiceRegistration
	failOn    string
	deregistered []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{services: map[string]*consulapi.AgentServiceRegistration{}}
}

func (f *fakeRegistry) Register(reg *consulapi.AgentServiceRegistration) error {
	if f.failOn != "" && strings.Contains(reg.ID, f.failOn) {
		return errors.New("agent unavailable")
	}
	f.services[reg.ID] = reg
	return nil
}

func (f *fakeRegistry) Deregister(id string) error {
	f.deregistered = append(f.deregistered, id)
	delete(f.services, id)
	return nil
}

func (f *fakeRegistry) Discover(name, tag string) ([]string, error) {
	return nil, nil
}

func TestAnnounce(t *testing.T) {
	t.Run("Registers both endpoints", func(t *testing.T) {
		reg := newFakeRegistry()
		deregister, err := Announce(reg, "favorites", Endpoints{Host: "10.0.0.5", HTTPPort: 8080, GRPCPort: 50051}, "10s", zap.NewNop())
		require.NoError(t, err)
		require.Len(t, reg.services, 2)

		httpReg := reg.services["favorites-http-10.0.0.5-8080"]
		require.NotNil(t, httpReg)
		assert.Equal(t, "favorites", httpReg.Name)
		assert.Equal(t, []string{"http"}, httpReg.Tags)
		assert.Equal(t, "http://10.0.0.5:8080/health", httpReg.Check.HTTP)
		assert.Equal(t, "10s", httpReg.Check.Interval)

		grpcReg := reg.services["favorites-grpc-10.0.0.5-50051"]
		require.NotNil(t, grpcReg)
		assert.Equal(t, 50051, grpcReg.Port)
		assert.Equal(t, "10.0.0.5:50051", grpcReg.Check.GRPC)

		deregister()
		assert.Empty(t, reg.services)
	})

	t.Run("Rolls back on failure", func(t *testing.T) {
		reg := newFakeRegistry()
		reg.failOn = "grpc"

		_, err := Announce(reg, "favorites", Endpoints{Host: "localhost", HTTPPort: 8080, GRPCPort: 50051}, "10s", zap.NewNop())
		assert.Error(t, err)
		assert.Empty(t, reg.services)
		assert.Equal(t, []string{"favorites-http-localhost-8080"}, reg.deregistered)
	})
}

// fakeAgent answers the handful of Consul HTTP endpoints the registry uses.
func fakeAgent(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	registered := new(sync.Map)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/agent/self", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]map[string]any{"Config": {"NodeName": "node-1"}})
	})
	mux.HandleFunc("/v1/agent/service/register", func(w http.ResponseWriter, r *http.Request) {
		var reg consulapi.AgentServiceRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		registered.Store(reg.ID, reg)
	})
	mux.HandleFunc("/v1/agent/service/deregister/", func(w http.ResponseWriter, r *http.Request) {
		registered.Delete(strings.TrimPrefix(r.URL.Path, "/v1/agent/service/deregister/"))
	})
	mux.HandleFunc("/v1/health/service/favorites", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "grpc", r.URL.Query().Get("tag"))
		// Query responses carry index metadata the client parses
		w.Header().Set("X-Consul-Index", "1")
		w.Header().Set("X-Consul-LastContact", "0")
		w.Header().Set("X-Consul-KnownLeader", "true")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"Node": map[string]any{"Address": "10.0.0.1"}, "Service": map[string]any{"Address": "", "Port": 50051}},
			{"Node": map[string]any{"Address": "10.0.0.1"}, "Service": map[string]any{"Address": "10.0.0.2", "Port": 50052}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, registered
}

func TestConsulRegistry(t *testing.T) {
	srv, registered := fakeAgent(t)

	reg, err := NewConsulRegistry(srv.URL, zap.NewNop().Sugar())
	require.NoError(t, err)

	deregister, err := Announce(reg, "favorites", Endpoints{Host: "localhost", HTTPPort: 8080, GRPCPort: 50051}, "10s", zap.NewNop())
	require.NoError(t, err)

	_, ok := registered.Load("favorites-http-localhost-8080")
	assert.True(t, ok)
	_, ok = registered.Load("favorites-grpc-localhost-50051")
	assert.True(t, ok)

	addrs, err := reg.Discover("favorites", "grpc")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1:50051", "10.0.0.2:50052"}, addrs)

	deregister()
	_, ok = registered.Load("favorites-http-localhost-8080")
	assert.False(t, ok)
}

func TestNewConsulRegistryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewConsulRegistry(srv.URL, zap.NewNop().Sugar())
	assert.ErrorContains(t, err, "cannot connect to consul agent")
}
