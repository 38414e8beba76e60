package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"favorites-restful/auth"
	"favorites-restful/config"
	"favorites-restful/database"
	"favorites-restful/repositories"
	"favorites-restful/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type testEnv struct {
	conn    *grpc.ClientConn
	client  *Client
	users   services.UserService
	catalog services.CatalogService
	issuer  *auth.TokenIssuer
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.SeedCatalog(db, zap.NewNop())

	users := services.NewUserService(repositories.NewUserRepository(db))
	catalog := services.NewCatalogService(repositories.NewCharacterRepository(db), repositories.NewLocationRepository(db))
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, "favorites")

	lis := bufconn.Listen(1 << 20)
	srv, _ := NewServer(zap.NewNop(), issuer, users, catalog)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testEnv{conn: conn, client: NewClient(conn), users: users, catalog: catalog, issuer: issuer}
}

func (e *testEnv) authed(t *testing.T, email string) (context.Context, uint) {
	t.Helper()
	user, err := e.users.CreateUser(&services.CreateUserInput{Email: email, Password: "secret"})
	require.NoError(t, err)
	token, err := e.issuer.GenerateToken(user)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token), user.ID
}

func TestListCatalog(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Call(context.Background(), MethodListCharacters, map[string]any{"page": 1, "page_size": 2})
	require.NoError(t, err)
	assert.Equal(t, float64(3), resp["total"])
	items := resp["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Rick Sanchez", items[0].(map[string]any)["name"])

	resp, err = env.client.Call(context.Background(), MethodListLocations, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, float64(3), resp["total"])
	assert.Equal(t, float64(10), resp["page_size"])

	resp, err = env.client.Call(context.Background(), MethodListLocations, map[string]any{"page_size": 5000})
	require.NoError(t, err)
	assert.Equal(t, float64(repositories.MaxPageSize), resp["page_size"])
}

func TestGetUser(t *testing.T) {
	env := setupTestServer(t)

	t.Run("Requires a token", func(t *testing.T) {
		_, err := env.client.Call(context.Background(), MethodGetUser, map[string]any{"id": 1})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	ctx, id := env.authed(t, "rick@example.com")

	t.Run("Found", func(t *testing.T) {
		resp, err := env.client.Call(ctx, MethodGetUser, map[string]any{"id": id})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(id), "email": "rick@example.com", "is_active": true}, resp)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := env.client.Call(ctx, MethodGetUser, map[string]any{"id": 999})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("Missing id", func(t *testing.T) {
		_, err := env.client.Call(ctx, MethodGetUser, map[string]any{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestGetUserWithFavorites(t *testing.T) {
	env := setupTestServer(t)
	ctx, id := env.authed(t, "rick@example.com")
	_, otherID := env.authed(t, "morty@example.com")

	require.NoError(t, env.users.AddFavoriteCharacter(id, id, 2))
	require.NoError(t, env.users.AddFavoriteLocation(id, id, 1))

	resp, err := env.client.Call(ctx, MethodGetUserWithFavorites, map[string]any{"id": id})
	require.NoError(t, err)
	chars := resp["favorite_characters"].([]any)
	require.Len(t, chars, 1)
	assert.Equal(t, "Morty Smith", chars[0].(map[string]any)["name"])
	locs := resp["favorite_locations"].([]any)
	require.Len(t, locs, 1)
	assert.Equal(t, "Earth (C-137)", locs[0].(map[string]any)["name"])
	assert.NotContains(t, resp, "password")

	_, err = env.client.Call(ctx, MethodGetUserWithFavorites, map[string]any{"id": otherID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestGetFavoritedBy(t *testing.T) {
	env := setupTestServer(t)
	ctx, id := env.authed(t, "rick@example.com")
	require.NoError(t, env.users.AddFavoriteCharacter(id, id, 1))

	resp, err := env.client.Call(context.Background(), MethodGetFavoritedBy, map[string]any{"kind": "character", "id": 1})
	require.NoError(t, err)
	users := resp["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "rick@example.com", users[0].(map[string]any)["email"])

	resp, err = env.client.Call(ctx, MethodGetFavoritedBy, map[string]any{"kind": "location", "id": 2})
	require.NoError(t, err)
	assert.Empty(t, resp["users"])

	_, err = env.client.Call(ctx, MethodGetFavoritedBy, map[string]any{"kind": "episode", "id": 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.Call(ctx, MethodGetFavoritedBy, map[string]any{"kind": "location", "id": 99})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServerServices(t *testing.T) {
	env := setupTestServer(t)

	srv, _ := NewServer(zap.NewNop(), env.issuer, env.users, env.catalog)
	info := srv.GetServiceInfo()
	assert.Contains(t, info, ServiceName)
	assert.Contains(t, info, healthpb.Health_ServiceDesc.ServiceName)
	assert.NotContains(t, info, "grpc.reflection.v1.ServerReflection")
	assert.NotContains(t, info, "grpc.reflection.v1alpha.ServerReflection")
}

func TestHealthCheck(t *testing.T) {
	env := setupTestServer(t)

	resp, err := healthpb.NewHealthClient(env.conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
