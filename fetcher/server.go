package main

import (
	"context"

	"tourneyhub/pkg/apperrors"
	pb "tourneyhub/pkg/grpc"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/stats"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server definition.
type server struct {
	fetcher stats.StatsFetcher
	logger  *logger.NewLogger
}

// FetchPlayerStats resolves a identifier through the Riot API.
func (s *server) FetchPlayerStats(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := s.fetcher.FetchFullStats(ctx, req.GetValue())
	if err != nil {
		s.logger.Warnf("couldn't fetch stats for %q: %v", req.GetValue(), err)
		return nil, apperrors.ToGRPC(err)
	}

	st, err := pb.StatsToStruct(result)
	if err != nil {
		return nil, apperrors.ToGRPC(err)
	}

	return st, nil
}
