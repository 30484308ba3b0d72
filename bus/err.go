package bus

import (
	"errors"

	"github.com/ezrec/minirisc/translate"
)

var f = translate.From

var (
	ErrUnmapped      = errors.New(f("unmapped address"))
	ErrMisaligned    = errors.New(f("misaligned address"))
	ErrWidth         = errors.New(f("access width invalid"))
	ErrDevice        = errors.New(f("device failure"))
	ErrRamSize       = errors.New(f("ram size invalid"))
	ErrImageTooLarge = errors.New(f("image exceeds ram"))
)

// Access operations reported in an ErrAccess.
const (
	OP_READ  = "read"
	OP_WRITE = "write"
)

// ErrAccess describes a faulting bus access.
type ErrAccess struct {
	Op    string // OP_READ or OP_WRITE
	Width Width  // Width of the access.
	Addr  uint32 // Address of the access.
	Err   error  // Underlying fault.
}

func (err *ErrAccess) Error() string {
	return f("%v %v at 0x%08x: %v", err.Op, err.Width, err.Addr, err.Err)
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}

// IsFatal returns true if the bus fault cannot be recovered from by the
// instruction stream. Only a misaligned read is recoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var access *ErrAccess
	if errors.As(err, &access) && access.Op == OP_READ && errors.Is(access.Err, ErrMisaligned) {
		return false
	}

	return true
}
