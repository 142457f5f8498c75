package protocol

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/walteh/mdprogress/pkg/debug"
)

var myLoggerId = xid.New().String()

// ZerologRPCLogger traces every message crossing the connection at trace level.
type ZerologRPCLogger struct{}

var (
	_ jrpc2.RPCLogger   = (*ZerologRPCLogger)(nil)
	_ CallbackRPCLogger = (*ZerologRPCLogger)(nil)
)

func (me *ZerologRPCLogger) LogRequest(ctx context.Context, req *jrpc2.Request) {
	zerolog.Ctx(ctx).Trace().Str("rpc_params", req.ParamString()).Str("rpc_id", req.ID()).Str("rpc_method", req.Method()).Msg("client request")
}

func (me *ZerologRPCLogger) LogResponse(ctx context.Context, res *jrpc2.Response) {
	zerolog.Ctx(ctx).Trace().Str("rpc_result", res.ResultString()).Str("rpc_id", res.ID()).Msg("server response")
}

func (me *ZerologRPCLogger) LogCallbackRequest(ctx context.Context, method string, params any) {
	zerolog.Ctx(ctx).Trace().Str("rpc_method", method).Interface("rpc_params", params).Msg("server callback")
}

func (me *ZerologRPCLogger) LogCallbackResponse(ctx context.Context, res *jrpc2.Response) {
	zerolog.Ctx(ctx).Trace().Str("rpc_result", res.ResultString()).Str("rpc_id", res.ID()).Msg("client callback response")
}

func ApplyRequestToZerolog(ctx context.Context, req *jrpc2.Request) context.Context {
	ctx = zerolog.Ctx(ctx).With().Str("rpc_method", req.Method()).Str("rpc_id", req.ID()).Logger().WithContext(ctx)
	return ctx
}

// ApplyClientToZerolog replaces the logger in ctx with one that forwards every line to the
// editor as window/logMessage. The writer itself keeps using the original ctx, so a failed
// notification never loops back into the editor.
func ApplyClientToZerolog(ctx context.Context, client Client) context.Context {
	writer := &logWriter{
		client: client,
		ctx:    ctx,
	}

	level := zerolog.Ctx(ctx).GetLevel()

	return zerolog.New(writer).With().
		Str("id", myLoggerId).
		Logger().
		Level(level).
		Hook(debug.CustomTimeHook{WithColor: false}).
		Hook(debug.CustomCallerHook{WithColor: false}).
		WithContext(ctx)
}

type logWriter struct {
	client Client
	mu     sync.Mutex
	ctx    context.Context
}

// Write implements io.Writer
func (w *logWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var logEntry map[string]any
	if err := json.Unmarshal(p, &logEntry); err != nil {
		return len(p), nil
	}

	level := ParseMessageTypeFromZerolog(extractField(logEntry, "level", "info"))
	msg := extractField(logEntry, "message", "")
	id := extractField(logEntry, "id", "")
	source := extractField(logEntry, "caller", "")
	delete(logEntry, "time")

	var b strings.Builder
	if id != myLoggerId {
		b.WriteString("[dependency] ")
	}
	b.WriteString(msg)

	keys := make([]string, 0, len(logEntry))
	for k := range logEntry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := json.Marshal(logEntry[k])
		b.WriteString(" " + k + "=" + string(v))
	}
	if source != "" {
		b.WriteString(" (" + source + ")")
	}

	if err := w.client.LogMessage(w.ctx, &LogMessageParams{Type: level, Message: b.String()}); err != nil {
		zerolog.Ctx(w.ctx).Debug().Err(err).Msg("forwarding log line to client")
	}

	return len(p), nil
}

func extractField(entry map[string]any, key, defaultValue string) string {
	if v, ok := entry[key].(string); ok {
		delete(entry, key)
		return v
	}
	return defaultValue
}

// ParseMessageTypeFromZerolog converts zerolog level to LSP MessageType
func ParseMessageTypeFromZerolog(level string) MessageType {
	switch level {
	case "error", "fatal", "panic":
		return Error
	case "warn":
		return Warning
	case "info":
		return Info
	case "debug":
		return Debug
	default:
		return Log
	}
}
