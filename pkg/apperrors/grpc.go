package apperrors

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kinds the fetcher can produce and their gRPC codes.
var grpcCodes = map[error]codes.Code{
	ErrPlayerNotFound:          codes.NotFound,
	ErrAuthenticationFailed:    codes.Unauthenticated,
	ErrAPIUnavailable:          codes.Unavailable,
	ErrRateLimitExceeded:       codes.ResourceExhausted,
	ErrInvalidIdentifierFormat: codes.InvalidArgument,
}

// ToGRPC converts a fetcher error into a gRPC status error.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}

	kind := Kind(err)
	code, ok := grpcCodes[kind]
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}

	return status.Error(code, kind.Error())
}

// FromGRPC converts a gRPC status error back into its error kind.
// Transport level failures are reported as ErrAPIUnavailable.
func FromGRPC(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return errors.Join(ErrAPIUnavailable, err)
	}

	for kind, code := range grpcCodes {
		if st.Code() == code {
			return errors.Join(kind, errors.New(st.Message()))
		}
	}

	if st.Code() == codes.DeadlineExceeded || st.Code() == codes.Canceled {
		return errors.Join(ErrAPIUnavailable, errors.New(st.Message()))
	}

	return errors.New(st.Message())
}
