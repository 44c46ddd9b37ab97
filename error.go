package symbol

import (
	"github.com/pkg/errors"

	"github.com/alexdcox/symbol-go/fault"
)

var (
	ErrDecode           = fault.ErrDecode
	ErrUnknownEnumValue = fault.ErrUnknownEnumValue
	ErrInvalidArgument  = fault.ErrInvalidArgument

	ErrNotAggregate       = errors.New("not an aggregate transaction")
	ErrNotSigned          = errors.New("transaction is not signed")
	ErrTransactionsHash   = errors.New("transactions hash does not match inner transactions")
	ErrMissingBody        = errors.New("transaction has no body")
	ErrEmbeddedAggregate  = errors.New("aggregate transactions cannot be embedded")
	ErrUnknownTransaction = errors.New("transaction type has no body codec")
)
