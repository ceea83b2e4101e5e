package wire

import (
	"fmt"

	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
)

// CallError carries the error value lifted from a StatusError outcome.
type CallError[E any] struct {
	Value E
}

func (e *CallError[E]) Error() string {
	return fmt.Sprintf("[call] call_error: %v", e.Value)
}

// Unwrap exposes the lifted value when it is itself an error.
func (e *CallError[E]) Unwrap() error {
	if err, ok := any(e.Value).(error); ok {
		return err
	}
	return nil
}

// Is matches the call_error kind sentinel.
func (e *CallError[E]) Is(target error) bool {
	t, ok := target.(*errors.Error)
	return ok && t.Kind == errors.KindCallError && (t.Phase == "" || t.Phase == errors.PhaseCall)
}

// CheckCallStatus interprets the outcome of a call and consumes its error
// buffer. A StatusError buffer is lifted with errCodec and returned as a
// *CallError[E]. A nil errCodec means the function declares no error type,
// so StatusError is itself reported as invalid_status.
func CheckCallStatus[E any](status *ffi.CallStatus, errCodec Codec[E]) error {
	switch status.Code {
	case ffi.StatusSuccess:
		return nil

	case ffi.StatusError:
		buf := status.TakeError()
		if errCodec == nil {
			_ = buf.Destroy()
			return errors.New(errors.PhaseCall, errors.KindInvalidStatus).
				Detail("function not returning an error returned an error").
				Build()
		}
		v, err := LiftFromBuffer(errCodec, buf)
		if err != nil {
			return errors.Wrap(errors.PhaseCall, errors.KindCallError, err, "lift error value")
		}
		return &CallError[E]{Value: v}

	case ffi.StatusUnexpectedError:
		buf := status.TakeError()
		// An empty diagnostic means the fault handler itself failed.
		if buf.IsEmpty() {
			_ = buf.Destroy()
			return errors.New(errors.PhaseCall, errors.KindUnexpectedError).
				Detail("panicked while handling a panic").
				Build()
		}
		msg, err := String.Lift(buf)
		if err != nil {
			return errors.Wrap(errors.PhaseCall, errors.KindUnexpectedError, err, "unreadable diagnostic")
		}
		return errors.New(errors.PhaseCall, errors.KindUnexpectedError).Detail(msg).Build()

	case ffi.StatusCancelled:
		buf := status.TakeError()
		_ = buf.Destroy()
		return errors.New(errors.PhaseCall, errors.KindCancelled).Detail("call cancelled").Build()

	default:
		return errors.New(errors.PhaseCall, errors.KindInvalidStatus).
			Value(uint32(status.Code)).
			Detail("unknown status code: %d", uint32(status.Code)).
			Build()
	}
}

// CheckStatus is CheckCallStatus for functions that declare no error type.
func CheckStatus(status *ffi.CallStatus) error {
	return CheckCallStatus[struct{}](status, nil)
}
