// Package fault holds the error taxonomy shared by the codec, the curve
// arithmetic and the signature engine.
//
// Every failure is one of three kinds and can be matched with errors.Is:
//
//   - ErrDecode: not enough bytes, a length field that disagrees with the
//     buffer, or a non-canonical point/scalar encoding.
//   - ErrUnknownEnumValue: a raw value with no matching variant.
//   - ErrInvalidArgument: caller input that is unusable before any decoding
//     starts (empty Merkle input, wrong seed length, ...).
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDecode           = errors.New("decode error")
	ErrUnknownEnumValue = errors.New("unknown enum value")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// DecodeError describes where and why deserialization stopped.
type DecodeError struct {
	What   string
	Offset int
	Want   int
	Have   int
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("decode %s at offset %d: %s", e.What, e.Offset, e.Reason)
	}
	return fmt.Sprintf(
		"decode %s at offset %d: need %d bytes, have %d",
		e.What,
		e.Offset,
		e.Want,
		e.Have)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Short reports a read that needed more bytes than were left.
func Short(what string, offset, want, have int) error {
	return errors.WithStack(&DecodeError{
		What:   what,
		Offset: offset,
		Want:   want,
		Have:   have,
	})
}

// Malformed reports bytes that are present but not acceptable.
func Malformed(what string, offset int, format string, args ...any) error {
	return errors.WithStack(&DecodeError{
		What:   what,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	})
}

// UnknownEnumValueError carries the raw value that failed the lookup.
type UnknownEnumValueError struct {
	Enum string
	Raw  uint64
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("%d (0x%x) is not a valid %s", e.Raw, e.Raw, e.Enum)
}

func (e *UnknownEnumValueError) Is(target error) bool {
	return target == ErrUnknownEnumValue
}

func UnknownEnumValue(enum string, raw uint64) error {
	return errors.WithStack(&UnknownEnumValueError{Enum: enum, Raw: raw})
}

func InvalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
