package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, duration, and any error code. Ledger failures
// also carry the failure kind and, for multi-step operations, the step.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				slog.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
				return resp, nil
			}

			attrs := []any{
				"procedure", procedure,
				"code", connect.CodeOf(err),
				"duration_ms", duration,
			}
			var ledgerErr *ledger.Error
			if errors.As(err, &ledgerErr) {
				attrs = append(attrs, "kind", ledgerErr.Kind)
				if ledgerErr.Step != "" {
					attrs = append(attrs, "step", ledgerErr.Step)
				}
			}

			var connectErr *connect.Error
			switch {
			case errors.As(err, &connectErr) && isClientError(connectErr.Code()):
				slog.Warn("RPC error", append(attrs, "error", connectErr.Message())...)
			default:
				slog.Error("RPC error", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodePermissionDenied, connect.CodeUnauthenticated, connect.CodeFailedPrecondition:
		return true
	}
	return false
}
