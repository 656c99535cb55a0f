package contract

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrGatewayDisabled = errors.New("tool server url is not configured")
	ErrModelInvoke     = errors.New("model invoke failed")
)
