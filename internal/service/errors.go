package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
)

// codeOf maps ledger errors to Connect codes.
func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, ledger.ErrDuplicateName):
		return connect.CodeAlreadyExists
	case errors.Is(err, ledger.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, ledger.ErrInvalidArgument):
		return connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrEmptyRegistry):
		return connect.CodeFailedPrecondition
	default:
		return connect.CodeInternal
	}
}

// toConnectError wraps a ledger error in a connect.Error with the matching code.
func toConnectError(err error) error {
	return connect.NewError(codeOf(err), err)
}

// fromConnectError turns an RPC error back into the ledger sentinel it was
// mapped from, so callers of RemoteLedger can use errors.Is as they would
// against the in-process ledger.
func fromConnectError(err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}

	var sentinel error
	switch connectErr.Code() {
	case connect.CodeAlreadyExists:
		sentinel = ledger.ErrDuplicateName
	case connect.CodeNotFound:
		sentinel = ledger.ErrNotFound
	case connect.CodeInvalidArgument:
		sentinel = ledger.ErrInvalidArgument
	case connect.CodeFailedPrecondition:
		sentinel = ledger.ErrEmptyRegistry
	default:
		return err
	}
	return fmt.Errorf("%s: %w", connectErr.Message(), sentinel)
}
