package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tabular/internal/logging"
	"tabular/internal/pattern"
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/transform"
)

type Server struct {
	grpc *grpc.Server
	lis  net.Listener
}

// StartServer listens on addr and registers the table service backed by
// registry. Call Serve to accept connections.
func StartServer(addr string, registry *transform.Registry) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewServer(lis, registry), nil
}

// NewServer serves the table service on an existing listener.
func NewServer(lis net.Listener, registry *transform.Registry) *Server {
	s := &Server{
		grpc: grpc.NewServer(grpc.UnaryInterceptor(logCalls)),
		lis:  lis,
	}
	RegisterTableServer(s.grpc, NewService(registry))
	return s
}

func (s *Server) Serve() error {
	return s.grpc.Serve(s.lis)
}

func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

func logCalls(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log := logging.L().With("request_id", uuid.NewString(), "method", info.FullMethod, "took", time.Since(start))
	if err != nil {
		log.Warn("rpc failed", "code", status.Code(err).String(), "err", err)
	} else {
		log.Debug("rpc ok")
	}
	return resp, err
}

// Service implements TableServer over a transform registry.
type Service struct {
	registry *transform.Registry
}

func NewService(registry *transform.Registry) *Service {
	if registry == nil {
		registry = transform.Default()
	}
	return &Service{registry: registry}
}

func (s *Service) Transform(_ context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	req, results, err := decodeRequest(in.GetValue())
	if err != nil {
		return nil, err
	}
	model, err := s.registry.Transform(results, req.Panel)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(model)
}

func (s *Service) Columns(_ context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	req, results, err := decodeRequest(in.GetValue())
	if err != nil {
		return nil, err
	}
	cols, err := s.registry.Columns(req.Panel.Transform, results)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(cols)
}

func (s *Service) Transformers(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return encode(s.registry.Names())
}

func decodeRequest(body []byte) (spec.Request, []rawdata.Result, error) {
	var req spec.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return req, nil, status.Errorf(codes.InvalidArgument, "request: %v", err)
	}
	var results []rawdata.Result
	if len(req.Data) > 0 {
		var err error
		if results, err = rawdata.Decode(req.Data); err != nil {
			return req, nil, status.Errorf(codes.InvalidArgument, "data: %v", err)
		}
	}
	return req, results, nil
}

func encode(v any) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return wrapperspb.Bytes(b), nil
}

func toStatus(err error) error {
	var (
		unknown *transform.UnknownTransformerError
		format  *transform.UnsupportedFormatError
		bad     *pattern.Error
	)
	switch {
	case errors.As(err, &unknown):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &format), errors.As(err, &bad):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, fmt.Sprintf("transform: %v", err))
}
