package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the gRPC service exposing the transform registry. Bodies
// are JSON documents carried in google.protobuf.BytesValue.
const ServiceName = "tabular.v1.TableService"

const (
	methodTransform    = "/" + ServiceName + "/Transform"
	methodColumns      = "/" + ServiceName + "/Columns"
	methodTransformers = "/" + ServiceName + "/Transformers"
)

// TableServer is implemented by *Service.
type TableServer interface {
	Transform(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Columns(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Transformers(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TableServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Transform", Handler: transformHandler},
		{MethodName: "Columns", Handler: columnsHandler},
		{MethodName: "Transformers", Handler: transformersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tabular/v1/table.proto",
}

// RegisterTableServer attaches srv to s.
func RegisterTableServer(s grpc.ServiceRegistrar, srv TableServer) {
	s.RegisterService(&serviceDesc, srv)
}

func transformHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TableServer).Transform(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodTransform}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TableServer).Transform(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func columnsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TableServer).Columns(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodColumns}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TableServer).Columns(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func transformersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TableServer).Transformers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodTransformers}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TableServer).Transformers(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
