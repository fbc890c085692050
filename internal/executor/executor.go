package executor

// #region imports
import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region methods

// Full method names of the host application's executor service. The
// service definition (and its generated bindings) live with the host;
// this client sends plain struct payloads over unary calls.
const (
	methodPreloadAssets  = "/smartintervention.Executor/PreloadAssets"
	methodPrepareContext = "/smartintervention.Executor/PrepareContext"
	methodNotifySwitch   = "/smartintervention.Executor/NotifySwitch"
)

// #endregion

// #region client-struct

// Client realizes context switches through the host application's gRPC
// executor service.
type Client struct {
	conn grpc.ClientConnInterface
	cc   *grpc.ClientConn // nil when the conn was injected
}

// New connects to the host executor service.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewWithConn creates a Client over an injected connection. Used for
// testing without a real gRPC server.
func NewWithConn(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Close shuts down the gRPC connection, if this client owns one.
func (c *Client) Close() error {
	if c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// #endregion

// #region apply

// Apply performs the switch: the preparation calls for the target mode
// run concurrently, and the event notification goes out only after every
// preparation has completed. Safe to retry; each step is idempotent on
// the host side.
func (c *Client) Apply(ctx context.Context, mode decision.Mode, ectx decision.Context) error {
	payload, err := contextPayload(ectx)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	preps := []string{methodPrepareContext}
	if mode == decision.ModeToEditor {
		preps = append(preps, methodPreloadAssets)
	}

	errc := make(chan error, len(preps))
	for _, method := range preps {
		go func(method string) { errc <- c.call(ctx, method, payload) }(method)
	}

	var firstErr error
	for range preps {
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	event, err := structpb.NewStruct(map[string]any{"event": string(mode)})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return c.call(ctx, methodNotifySwitch, event)
}

// #endregion

// #region helpers

func (c *Client) call(ctx context.Context, method string, payload *structpb.Struct) error {
	if err := c.conn.Invoke(ctx, method, payload, &emptypb.Empty{}); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func contextPayload(ectx decision.Context) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"current_mode":    ectx.CurrentMode,
		"last_action":     ectx.LastAction,
		"user_preference": float64(ectx.UserPreference),
	})
}

// #endregion
