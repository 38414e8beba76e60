package grpcserver

import (
	"context"
	"errors"
	"math"

	"favorites-restful/interceptors"
	"favorites-restful/models"
	"favorites-restful/repositories"
	"favorites-restful/services"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// favoritesServer implements FavoritesServiceServer on top of the services.
type favoritesServer struct {
	users   services.UserService
	catalog services.CatalogService
}

var _ FavoritesServiceServer = (*favoritesServer)(nil)

func NewFavoritesServer(users services.UserService, catalog services.CatalogService) FavoritesServiceServer {
	return &favoritesServer{users: users, catalog: catalog}
}

// GetUser expects {"id": n} and answers with User.Serialize.
func (s *favoritesServer) GetUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(user.Serialize())
}

// GetUserWithFavorites is limited to the caller's own record.
func (s *favoritesServer) GetUserWithFavorites(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return nil, err
	}
	callerID, ok := interceptors.GetUserIDFromContext(ctx)
	if !ok || callerID != id {
		return nil, status.Error(codes.PermissionDenied, "favorites are only visible to their owner")
	}
	user, err := s.users.GetUserWithFavorites(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(user.SerializeWithFavorites())
}

// ListCharacters accepts optional "page" and "page_size".
func (s *favoritesServer) ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, pageSize := pageArgs(req)
	characters, total, err := s.catalog.ListCharacters(page, pageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	items := make([]any, len(characters))
	for i := range characters {
		items[i] = characters[i].Serialize()
	}
	return toStruct(map[string]any{"items": items, "total": total, "page": page, "page_size": pageSize})
}

func (s *favoritesServer) ListLocations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, pageSize := pageArgs(req)
	locations, total, err := s.catalog.ListLocations(page, pageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	items := make([]any, len(locations))
	for i := range locations {
		items[i] = locations[i].Serialize()
	}
	return toStruct(map[string]any{"items": items, "total": total, "page": page, "page_size": pageSize})
}

// GetFavoritedBy expects {"kind": "character"|"location", "id": n}.
func (s *favoritesServer) GetFavoritedBy(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return nil, err
	}

	var users []models.User
	switch kind := req.GetFields()["kind"].GetStringValue(); kind {
	case "character":
		users, err = s.catalog.CharacterFavoritedBy(id)
	case "location":
		users, err = s.catalog.LocationFavoritedBy(id)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown kind %q", kind)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	items := make([]any, len(users))
	for i := range users {
		items[i] = users[i].Serialize()
	}
	return toStruct(map[string]any{"users": items})
}

func requireID(req *structpb.Struct, field string) (uint, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	n := v.GetNumberValue()
	if n < 1 || n > math.MaxUint32 || n != math.Trunc(n) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a positive integer", field)
	}
	return uint(n), nil
}

func pageArgs(req *structpb.Struct) (int, int) {
	return repositories.NormalizePage(
		int(req.GetFields()["page"].GetNumberValue()),
		int(req.GetFields()["page_size"].GetNumberValue()),
	)
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}

// toStatus converts service errors to gRPC status errors.
func toStatus(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, repositories.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}
