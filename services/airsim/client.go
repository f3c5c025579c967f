package airsim

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"trajectory-logger/models"
)

const (
	msgRequest  = 0
	msgResponse = 1
)

var (
	// ErrNotConnected is returned when the client has no usable connection.
	ErrNotConnected = errors.New("simulator not connected")
	// ErrTimeout is returned when a call misses its deadline.
	ErrTimeout = errors.New("simulator call timed out")
)

// RPCError is an error reported by the simulator for a specific call.
type RPCError struct {
	Method string
	Value  any
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Method, e.Value)
}

// Client is a minimal msgpack-RPC client for the simulator's multirotor API.
// Calls are serialised; one request is in flight at a time.
type Client struct {
	addr    string // empty when built over a caller-supplied conn
	vehicle string
	timeout time.Duration

	mu   sync.Mutex
	conn net.Conn
	rd   *bufio.Reader
	dec  *msgpack.Decoder
	buf  bytes.Buffer
	enc  *msgpack.Encoder
	seq  uint64
}

// Dial connects to the simulator at addr ("host:port").
func Dial(ctx context.Context, addr, vehicle string, timeout time.Duration) (*Client, error) {
	c := &Client{addr: addr, vehicle: vehicle, timeout: timeout}
	c.enc = msgpack.NewEncoder(&c.buf)
	if err := c.dial(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClient wraps an established connection. The client will not redial
// if the connection breaks.
func NewClient(conn net.Conn, vehicle string, timeout time.Duration) *Client {
	c := &Client{vehicle: vehicle, timeout: timeout}
	c.enc = msgpack.NewEncoder(&c.buf)
	c.attach(conn)
	return c
}

func (c *Client) dial(ctx context.Context) error {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("dial simulator %s: %w", c.addr, err)
	}
	c.attach(conn)
	return nil
}

func (c *Client) attach(conn net.Conn) {
	c.conn = conn
	c.rd = bufio.NewReader(conn)
	c.dec = msgpack.NewDecoder(c.rd)
}

// Close drops the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Call invokes method with params and decodes the result into out (which may
// be nil to discard it). The call must finish within the client timeout and
// before ctx is done. A transport failure drops the connection; the next call
// redials when the client was created with Dial.
func (c *Client) Call(ctx context.Context, method string, out any, params ...any) error {
	return c.call(ctx, c.timeout, method, out, params)
}

func (c *Client) call(ctx context.Context, timeout time.Duration, method string, out any, params []any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if c.conn == nil {
		if c.addr == "" {
			return ErrNotConnected
		}
		if err := c.dial(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrNotConnected, err)
		}
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return c.fail(ctx, method, err)
	}
	// Wake a blocked read when ctx is cancelled.
	conn := c.conn
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	c.seq++
	id := c.seq
	if err := c.writeRequest(id, method, params); err != nil {
		return c.fail(ctx, method, err)
	}
	if err := c.readResponse(id, method, out); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return err
		}
		return c.fail(ctx, method, err)
	}
	return nil
}

func (c *Client) writeRequest(id uint64, method string, params []any) error {
	c.buf.Reset()
	c.enc.Reset(&c.buf)
	if err := c.enc.EncodeArrayLen(4); err != nil {
		return err
	}
	if err := c.enc.EncodeInt(msgRequest); err != nil {
		return err
	}
	if err := c.enc.EncodeUint(id); err != nil {
		return err
	}
	if err := c.enc.EncodeString(method); err != nil {
		return err
	}
	if err := c.enc.EncodeArrayLen(len(params)); err != nil {
		return err
	}
	for _, p := range params {
		if err := c.enc.Encode(p); err != nil {
			return fmt.Errorf("encode %s params: %w", method, err)
		}
	}
	_, err := c.conn.Write(c.buf.Bytes())
	return err
}

func (c *Client) readResponse(id uint64, method string, out any) error {
	for {
		n, err := c.dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if n != 4 {
			return fmt.Errorf("malformed response: %d elements", n)
		}
		typ, err := c.dec.DecodeInt()
		if err != nil {
			return err
		}
		if typ != msgResponse {
			return fmt.Errorf("unexpected message type %d", typ)
		}
		rid, err := c.dec.DecodeUint64()
		if err != nil {
			return err
		}
		errVal, err := c.dec.DecodeInterface()
		if err != nil {
			return err
		}

		// A late answer to an earlier, abandoned call: discard it.
		if rid != id {
			if err := c.dec.Skip(); err != nil {
				return err
			}
			continue
		}

		if errVal != nil {
			if err := c.dec.Skip(); err != nil {
				return err
			}
			return &RPCError{Method: method, Value: errVal}
		}
		if out == nil {
			return c.dec.Skip()
		}
		if err := c.dec.Decode(out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	}
}

// fail closes the broken connection and classifies the error.
func (c *Client) fail(ctx context.Context, method string, err error) error {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", method, ctx.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", method, ErrTimeout)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%s: %w", method, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", method, err)
}

// ─── Multirotor API ─────────────────────────────────────────────────────

// Ping confirms the simulator is answering.
func (c *Client) Ping(ctx context.Context) error {
	var ok bool
	if err := c.Call(ctx, "ping", &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ping: simulator not ready")
	}
	return nil
}

func (c *Client) EnableAPIControl(ctx context.Context, on bool) error {
	return c.Call(ctx, "enableApiControl", nil, on, c.vehicle)
}

func (c *Client) ArmDisarm(ctx context.Context, arm bool) error {
	var ok bool
	if err := c.Call(ctx, "armDisarm", &ok, arm, c.vehicle); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("armDisarm(%v): refused by simulator", arm)
	}
	return nil
}

// Takeoff blocks until the vehicle has taken off or timeout elapses on the
// simulator side. ctx should allow at least that long.
func (c *Client) Takeoff(ctx context.Context, timeout time.Duration) error {
	return c.call(ctx, timeout+c.timeout, "takeoff", nil, []any{timeout.Seconds(), c.vehicle})
}

// Land blocks until the vehicle is on the ground or timeout elapses.
func (c *Client) Land(ctx context.Context, timeout time.Duration) error {
	return c.call(ctx, timeout+c.timeout, "land", nil, []any{timeout.Seconds(), c.vehicle})
}

func (c *Client) Hover(ctx context.Context) error {
	return c.Call(ctx, "hover", nil, c.vehicle)
}

// MultirotorState fetches the full vehicle state.
func (c *Client) MultirotorState(ctx context.Context) (MultirotorState, error) {
	var st MultirotorState
	err := c.Call(ctx, "getMultirotorState", &st, c.vehicle)
	return st, err
}

// Flying reports whether the vehicle is currently off the ground.
func (c *Client) Flying(ctx context.Context) (bool, error) {
	st, err := c.MultirotorState(ctx)
	if err != nil {
		return false, err
	}
	return st.Flying(), nil
}

// Pose fetches the estimated position and attitude.
func (c *Client) Pose(ctx context.Context) (models.Pose, error) {
	st, err := c.MultirotorState(ctx)
	if err != nil {
		return models.Pose{}, err
	}
	return st.Pose(), nil
}

// MoveByVelocity commands a velocity in the requested frame for duration,
// with yaw held at the command's rate.
func (c *Client) MoveByVelocity(ctx context.Context, cmd models.Command, duration time.Duration) error {
	method := "moveByVelocityBodyFrame"
	if cmd.Frame == models.FrameWorld {
		method = "moveByVelocity"
	}
	yaw := YawMode{IsRate: true, YawOrRate: cmd.YawRate}
	v := cmd.Velocity
	return c.Call(ctx, method, nil,
		v.X, v.Y, v.Z, duration.Seconds(), MaxDegreeOfFreedom, yaw, c.vehicle)
}
