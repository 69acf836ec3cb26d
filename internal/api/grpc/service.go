package grpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/ghreputation/internal/app"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const rateLimitResetKey = "x-ratelimit-reset"

// AppService can aggregate github profiles and score them.
type AppService interface {
	Profile(ctx context.Context, login string) (*app.Profile, error)
	Reputation(ctx context.Context, login string) (*app.Reputation, error)
}

// Service implements ServiceServer definition, acting as a direct proxy to AppService.
type Service struct {
	appService AppService
}

var _ ServiceServer = &Service{}

// NewService returns new Service instance
func NewService(appService AppService) *Service {
	return &Service{
		appService: appService,
	}
}

// Profile calls service and returns profile as a struct with the same fields as the http json response.
func (s *Service) Profile(ctx context.Context, r *wrapperspb.StringValue) (*structpb.Struct, error) {
	profile, err := s.appService.Profile(ctx, r.GetValue())
	if err != nil {
		setRateLimitTrailer(ctx, err)
		return nil, toStatusError(err)
	}

	return toStruct(profile)
}

// Reputation calls service and returns reputation as a struct.
func (s *Service) Reputation(ctx context.Context, r *wrapperspb.StringValue) (*structpb.Struct, error) {
	reputation, err := s.appService.Reputation(ctx, r.GetValue())
	if err != nil {
		setRateLimitTrailer(ctx, err)
		return nil, toStatusError(err)
	}

	return toStruct(reputation)
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding reply: %v", err)
	}

	var st structpb.Struct
	if err := protojson.Unmarshal(b, &st); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding reply: %v", err)
	}

	return &st, nil
}

func fromStruct(st *structpb.Struct, target interface{}) error {
	b, err := protojson.Marshal(st)
	if err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, target); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}

	return nil
}

func toStatusError(err error) error {
	switch {
	case app.IsInvalidRequestError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case app.IsNotFoundError(err):
		return status.Error(codes.NotFound, err.Error())
	case app.IsRateLimitedError(err):
		rlErr, _ := app.AsRateLimitedError(err)
		return status.Error(codes.ResourceExhausted, rlErr.Message)
	case app.IsUpstreamUnavailableError(err):
		return status.Error(codes.Unavailable, err.Error())
	case app.IsFetchFailedError(err):
		return status.Error(codes.Unknown, err.Error())
	}

	return status.Errorf(codes.Internal, "service error: %v", err)
}

// setRateLimitTrailer passes rate limit reset time to the client.
func setRateLimitTrailer(ctx context.Context, err error) {
	rlErr, ok := app.AsRateLimitedError(err)
	if !ok || rlErr.ResetAt.IsZero() {
		return
	}
	_ = grpc.SetTrailer(ctx, metadata.Pairs(rateLimitResetKey, strconv.FormatInt(rlErr.ResetAt.Unix(), 10)))
}

// fromStatusError maps grpc status back to app error kinds.
// trailer carries rate limit reset time if server knew it.
func fromStatusError(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return app.InvalidRequestError(st.Message())
	case codes.NotFound:
		return app.NotFoundError(st.Message())
	case codes.ResourceExhausted:
		rlErr := app.RateLimitedError{Message: st.Message()}
		if vs := trailer.Get(rateLimitResetKey); len(vs) > 0 {
			if ts, err := strconv.ParseInt(vs[0], 10, 64); err == nil {
				rlErr.ResetAt = time.Unix(ts, 0).UTC()
			}
		}
		return rlErr
	case codes.Unavailable:
		return app.UpstreamUnavailableError(st.Message())
	case codes.Unknown:
		return &app.FetchFailedError{Op: "remote", Err: errors.New(st.Message())}
	}

	return err
}
