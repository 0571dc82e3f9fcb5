package service

import (
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

// codeFor maps a ledger failure kind to a Connect code.
func codeFor(kind ledger.Kind) connect.Code {
	switch kind {
	case ledger.KindNotFound:
		return connect.CodeNotFound
	case ledger.KindAlreadyExists:
		return connect.CodeAlreadyExists
	case ledger.KindUnauthorized:
		return connect.CodePermissionDenied
	case ledger.KindInvalidSplit, ledger.KindInvalidInput:
		return connect.CodeInvalidArgument
	case ledger.KindUpstream:
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// fail logs a failed operation and converts err for the wire.
func fail(op string, err error, attrs ...any) error {
	code := codeFor(ledger.KindOf(err))
	attrs = append(attrs, "error", err)
	switch code {
	case connect.CodeInternal, connect.CodeUnavailable:
		slog.Error(op+" failed", attrs...)
	default:
		slog.Warn(op+" failed", attrs...)
	}
	return connect.NewError(code, err)
}
