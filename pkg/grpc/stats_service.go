package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service and method names of the stats service.
const (
	StatsServiceName                   = "tourneyhub.StatsService"
	StatsService_FetchPlayerStats_Full = "/tourneyhub.StatsService/FetchPlayerStats"
)

// StatsServiceServer is the fetcher side of the stats service.
// The request carries the player identifier, the response the stats value as a struct.
type StatsServiceServer interface {
	FetchPlayerStats(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterStatsServiceServer registers the implementation on a gRPC server.
func RegisterStatsServiceServer(s grpc.ServiceRegistrar, srv StatsServiceServer) {
	s.RegisterService(&StatsService_ServiceDesc, srv)
}

func fetchPlayerStatsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatsServiceServer).FetchPlayerStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StatsService_FetchPlayerStats_Full,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StatsServiceServer).FetchPlayerStats(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// StatsService_ServiceDesc is the descriptor of the stats service.
var StatsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: StatsServiceName,
	HandlerType: (*StatsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FetchPlayerStats",
			Handler:    fetchPlayerStatsHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// StatsServiceClient is the api side of the stats service.
type StatsServiceClient interface {
	FetchPlayerStats(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type statsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStatsServiceClient creates a client on the given connection.
func NewStatsServiceClient(cc grpc.ClientConnInterface) StatsServiceClient {
	return &statsServiceClient{cc}
}

func (c *statsServiceClient) FetchPlayerStats(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, StatsService_FetchPlayerStats_Full, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
