package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/spec"
	"tabular/internal/transform"
	"tabular/internal/transport"
)

const seriesData = `[{"target": "cpu", "datapoints": [[1, 1000], [2, 2000]]}]`

func TestNew_SelectsImplementation(t *testing.T) {
	c, err := New(spec.ClientSpec{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &InProcess{}, c)

	_, err = New(spec.ClientSpec{Type: "grpc"}, nil)
	assert.ErrorContains(t, err, "address")

	_, err = New(spec.ClientSpec{Type: "stdio"}, nil)
	assert.ErrorContains(t, err, "stdio")
}

func TestInProcess_Transform(t *testing.T) {
	c := NewInProcess(nil)
	defer c.Close()

	m, err := c.Transform(context.Background(), spec.Request{
		Panel: spec.Panel{Transform: transform.TimeseriesToRows},
		Data:  json.RawMessage(seriesData),
	})
	require.NoError(t, err)
	assert.Len(t, m.Rows, 2)

	_, err = c.Transform(context.Background(), spec.Request{Panel: spec.Panel{Transform: "nope"}})
	var unknown *transform.UnknownTransformerError
	assert.True(t, errors.As(err, &unknown))

	_, err = c.Transform(context.Background(), spec.Request{
		Panel: spec.Panel{Transform: transform.TimeseriesToRows},
		Data:  json.RawMessage(`[{"neither": true}]`),
	})
	assert.Error(t, err)
}

func TestInProcess_ColumnsAndTransformers(t *testing.T) {
	c := NewInProcess(transform.NewRegistry())
	cols, err := c.Columns(context.Background(), spec.Request{Panel: spec.Panel{Transform: transform.TimeseriesAggregations}})
	require.NoError(t, err)
	assert.Len(t, cols, 6)

	infos, err := c.Transformers(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 6)
}

func TestGRPC_MatchesInProcess(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := transport.NewServer(lis, transform.NewRegistry())
	go func() { _ = srv.Serve() }()
	defer srv.Stop()

	remote, err := New(spec.ClientSpec{Type: "grpc", Address: srv.Addr().String(), TimeoutMS: 2000}, nil)
	require.NoError(t, err)
	defer remote.Close()

	req := spec.Request{
		Panel: spec.Panel{Transform: transform.TimeseriesToColumns},
		Data:  json.RawMessage(seriesData),
	}
	want, err := NewInProcess(nil).Transform(context.Background(), req)
	require.NoError(t, err)
	got, err := remote.Transform(context.Background(), req)
	require.NoError(t, err)
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))

	_, err = remote.Transform(context.Background(), spec.Request{Panel: spec.Panel{Transform: "nope"}})
	var unknown *transform.UnknownTransformerError
	assert.True(t, errors.As(err, &unknown))
}

func TestGRPC_Timeout(t *testing.T) {
	c := &GRPC{timeout: 10 * time.Millisecond}
	ctx, cancel := c.bound(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)
}
