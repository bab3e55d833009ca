package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tabular/internal/spec"
	"tabular/internal/table"
	"tabular/internal/transform"
)

// Client calls a remote table service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to target. Without options the connection is plaintext.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: cc}, nil
}

func (c *Client) Transform(ctx context.Context, req spec.Request) (*table.Model, error) {
	model := table.New()
	if err := c.call(ctx, methodTransform, req, model); err != nil {
		return nil, fromStatus(err, req.Panel.Transform)
	}
	return model, nil
}

func (c *Client) Columns(ctx context.Context, req spec.Request) ([]table.Column, error) {
	var cols []table.Column
	if err := c.call(ctx, methodColumns, req, &cols); err != nil {
		return nil, fromStatus(err, req.Panel.Transform)
	}
	return cols, nil
}

func (c *Client) Transformers(ctx context.Context) ([]transform.Info, error) {
	var resp wrapperspb.BytesValue
	if err := c.conn.Invoke(ctx, methodTransformers, &emptypb.Empty{}, &resp); err != nil {
		return nil, err
	}
	var infos []transform.Info
	if err := json.Unmarshal(resp.GetValue(), &infos); err != nil {
		return nil, fmt.Errorf("decode transformers: %w", err)
	}
	return infos, nil
}

func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, req spec.Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	var resp wrapperspb.BytesValue
	if err := c.conn.Invoke(ctx, method, wrapperspb.Bytes(body), &resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.GetValue(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fromStatus restores the unknown-transformer error so remote and
// in-process callers can test for it the same way.
func fromStatus(err error, name string) error {
	if status.Code(err) == codes.NotFound {
		return &transform.UnknownTransformerError{Name: name}
	}
	return err
}
