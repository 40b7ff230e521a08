package grpcclient

import (
	"context"
	"fmt"
	"time"

	"tourneyhub/pkg/apperrors"
	pb "tourneyhub/pkg/grpc"
	"tourneyhub/pkg/stats"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The fetcher may do up to three Riot calls per request.
const defaultCallTimeout = 35 * time.Second

// StatsGRPCClient fetches player stats from the fetcher process.
type StatsGRPCClient struct {
	client  pb.StatsServiceClient
	timeout time.Duration
}

// NewStatsGRPCClient creates a new stats gRPC client.
func NewStatsGRPCClient(grpcConn grpc.ClientConnInterface) *StatsGRPCClient {
	return &StatsGRPCClient{
		client:  pb.NewStatsServiceClient(grpcConn),
		timeout: defaultCallTimeout,
	}
}

// Dial opens a connection to the fetcher.
func Dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to the fetcher at %s: %w", addr, err)
	}
	return conn, nil
}

// FetchFullStats makes a gRPC request to the fetcher for the stats of a identifier.
func (c *StatsGRPCClient) FetchFullStats(ctx context.Context, identifier string) (*stats.APIStats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.FetchPlayerStats(ctx, wrapperspb.String(identifier))
	if err != nil {
		return nil, apperrors.FromGRPC(err)
	}

	result, err := pb.StructToStats(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAPIUnavailable, err)
	}

	return result, nil
}
