package grpcserver

import (
	"favorites-restful/auth"
	"favorites-restful/interceptors"
	"favorites-restful/services"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewServer builds the gRPC server with logging and auth interceptors,
// FavoritesService and the standard health service. Server reflection is
// not registered: the service descriptor is hand-declared and has no
// protobuf file descriptor to serve.
func NewServer(logger *zap.Logger, issuer *auth.TokenIssuer, users services.UserService, catalog services.CatalogService) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.ZapLoggingInterceptor(logger),
		// Health probes (Consul's gRPC check among them) carry no token
		interceptors.AuthInterceptor(issuer, append([]string{healthpb.Health_Check_FullMethodName}, PublicMethods...)...),
	))
	RegisterFavoritesServiceServer(srv, NewFavoritesServer(users, catalog))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, healthServer
}
