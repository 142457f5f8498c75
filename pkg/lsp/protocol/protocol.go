// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"context"
	"io"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"gitlab.com/tozd/go/errors"
)

// CallbackRPCLogger is implemented by RPC loggers that also want to see server-to-client calls.
type CallbackRPCLogger interface {
	LogCallbackRequest(ctx context.Context, method string, params any)
	LogCallbackResponse(ctx context.Context, res *jrpc2.Response)
}

// CallbackClient sends requests and notifications from the server to the editor.
type CallbackClient struct {
	serverOpts *jrpc2.ServerOptions
	client     *jrpc2.Server
}

func NewCallbackClient(server *jrpc2.Server, serverOpts *jrpc2.ServerOptions) *CallbackClient {
	return &CallbackClient{client: server, serverOpts: serverOpts}
}

func (c *CallbackClient) Notify(ctx context.Context, method string, params any) error {
	if err := c.client.Notify(ctx, method, params); err != nil {
		return errors.Errorf("notifying %s: %w", method, err)
	}
	return nil
}

func (c *CallbackClient) Callback(ctx context.Context, method string, params any) (*jrpc2.Response, error) {
	rl, logged := c.serverOpts.RPCLog.(CallbackRPCLogger)
	if logged {
		rl.LogCallbackRequest(ctx, method, params)
	}

	res, err := c.client.Callback(ctx, method, params)
	if err != nil {
		return nil, errors.Errorf("calling back %s: %w", method, err)
	}

	if logged {
		rl.LogCallbackResponse(ctx, res)
	}

	return res, nil
}

// ServerInstance is a jrpc2 server dispatching to a Server, together with the client used to
// call back into the editor.
type ServerInstance struct {
	server   *jrpc2.Server
	callback *CallbackClient
}

// NewServerInstance builds the dispatch table for server. Every request context carries the
// logger found in ctx.
func NewServerInstance(ctx context.Context, server Server, opts *jrpc2.ServerOptions) *ServerInstance {
	if opts == nil {
		opts = &jrpc2.ServerOptions{}
	}

	opts.AllowPush = true

	if opts.NewContext == nil {
		opts.NewContext = func() context.Context {
			return ctx
		}
	}

	result := jrpc2.NewServer(buildServerDispatchMap(server), opts)

	return &ServerInstance{
		server:   result,
		callback: NewCallbackClient(result, opts),
	}
}

func (me *ServerInstance) Callback() *CallbackClient {
	return me.callback
}

func (me *ServerInstance) Server() *jrpc2.Server {
	return me.server
}

// Start serves ch in the background.
func (me *ServerInstance) Start(ch channel.Channel) {
	me.server.Start(ch)
}

// StartAndWait serves LSP framed messages from r and w until the stream ends or Stop is called.
func (me *ServerInstance) StartAndWait(r io.Reader, w io.WriteCloser) error {
	me.server.Start(channel.LSP(r, w))
	return me.Wait()
}

// Wait blocks until the server stops. Stop and a closed stream are a clean exit.
func (me *ServerInstance) Wait() error {
	status := me.server.WaitStatus()
	if status.Stopped || status.Closed {
		return nil
	}
	if status.Err != nil {
		return errors.Errorf("language server stopped: %w", status.Err)
	}
	return nil
}

func (me *ServerInstance) Stop() {
	me.server.Stop()
}
