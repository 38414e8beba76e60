package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "favorites.FavoritesService"

// Full method names, as seen by interceptors.
const (
	MethodGetUser              = "/" + ServiceName + "/GetUser"
	MethodGetUserWithFavorites = "/" + ServiceName + "/GetUserWithFavorites"
	MethodListCharacters       = "/" + ServiceName + "/ListCharacters"
	MethodListLocations        = "/" + ServiceName + "/ListLocations"
	MethodGetFavoritedBy       = "/" + ServiceName + "/GetFavoritedBy"
)

// PublicMethods serve catalog data and need no bearer token.
var PublicMethods = []string{MethodListCharacters, MethodListLocations, MethodGetFavoritedBy}

// FavoritesServiceServer exchanges google.protobuf.Struct messages whose
// fields are the serialized record maps.
type FavoritesServiceServer interface {
	GetUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUserWithFavorites(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLocations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFavoritedBy(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(FavoritesServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(FavoritesServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*structpb.Struct))
		})
	}
}

// FavoritesServiceDesc is registered with grpc.Server.RegisterService.
var FavoritesServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FavoritesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetUser", Handler: unaryHandler(MethodGetUser, FavoritesServiceServer.GetUser)},
		{MethodName: "GetUserWithFavorites", Handler: unaryHandler(MethodGetUserWithFavorites, FavoritesServiceServer.GetUserWithFavorites)},
		{MethodName: "ListCharacters", Handler: unaryHandler(MethodListCharacters, FavoritesServiceServer.ListCharacters)},
		{MethodName: "ListLocations", Handler: unaryHandler(MethodListLocations, FavoritesServiceServer.ListLocations)},
		{MethodName: "GetFavoritedBy", Handler: unaryHandler(MethodGetFavoritedBy, FavoritesServiceServer.GetFavoritedBy)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "favorites.proto",
}

// RegisterFavoritesServiceServer attaches srv to s.
func RegisterFavoritesServiceServer(s grpc.ServiceRegistrar, srv FavoritesServiceServer) {
	s.RegisterService(&FavoritesServiceDesc, srv)
}

// Client is a thin caller for FavoritesService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes fullMethod with in as the request and returns the decoded
// response. Numbers come back as float64.
func (c *Client) Call(ctx context.Context, fullMethod string, in map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
