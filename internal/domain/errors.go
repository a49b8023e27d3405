package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownModel      = errors.New("unknown model")
	ErrUnsupportedMode   = errors.New("unsupported mode")
	ErrMissingAsset      = errors.New("missing required asset")
	ErrUnpricedModel     = errors.New("model has no pricing")
	ErrInsufficientFunds = errors.New("insufficient credits")
	ErrPollTimeout       = errors.New("generation timed out")
	ErrCancelled         = errors.New("cancelled by user")
	ErrTerminalJob       = errors.New("job already terminal")
)
