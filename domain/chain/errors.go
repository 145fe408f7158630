package chain

import (
	"errors"
	"fmt"

	"github.com/x-xyz/spotmarket/domain"
)

var (
	ErrUnknownContract   = errors.New("unknown contract")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInlineAuthority   = errors.New("inline action may only use the sender authority")
	ErrMaxDepth          = errors.New("max inline depth exceeded")
	ErrTooManyActions    = errors.New("too many actions in transaction")
	ErrEmptyTransaction  = errors.New("transaction has no actions")
	ErrContractDeployed  = errors.New("contract already deployed")
	ErrUnexpectedPayload = errors.New("unexpected action payload")
)

// ActionError is returned when a handler aborts the transaction.
type ActionError struct {
	Account  domain.Name
	Action   domain.ActionName
	Receiver domain.Name
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s::%s on %s: %v", e.Account, e.Action, e.Receiver, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Reason returns the message of the handler check that aborted the
// transaction, without the action path leading to it.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var last *ActionError
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ae, ok := e.(*ActionError); ok {
			last = ae
		}
	}
	if last == nil {
		return err.Error()
	}
	return last.Err.Error()
}
