package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service definition, equivalent of:
//
//	service Reputation {
//	  rpc Profile(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc Reputation(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	}
const (
	serviceName       = "ghreputation.Reputation"
	profileMethod     = "/" + serviceName + "/Profile"
	reputationMethod  = "/" + serviceName + "/Reputation"
	serviceDescSource = "ghreputation.proto"
)

// ServiceServer is the server API for Reputation service.
type ServiceServer interface {
	Profile(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Reputation(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterServiceServer registers srv in grpc server s.
func RegisterServiceServer(s grpc.ServiceRegistrar, srv ServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Profile",
			Handler:    profileHandler,
		},
		{
			MethodName: "Reputation",
			Handler:    reputationHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceDescSource,
}

func profileHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServiceServer).Profile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: profileMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServiceServer).Profile(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func reputationHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServiceServer).Reputation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: reputationMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServiceServer).Reputation(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
