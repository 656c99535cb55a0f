package contract

import (
	"fmt"
	"strings"
)

const minTicketMessageLength = 8

// Validate checks the fields a swarm run depends on. Metadata and the urgency
// hint are free-form and never validated.
func (t TicketRequest) Validate() error {
	if strings.TrimSpace(t.TicketID) == "" {
		return fmt.Errorf("%w: ticket_id is required", ErrValidation)
	}
	if strings.TrimSpace(t.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	message := strings.TrimSpace(t.Message)
	if len(message) < minTicketMessageLength {
		return fmt.Errorf("%w: message must be at least %d characters", ErrValidation, minTicketMessageLength)
	}
	switch t.PreferredTone {
	case "", ToneFriendly, ToneFormal, ToneDirect:
	default:
		return fmt.Errorf("%w: unsupported tone %q", ErrValidation, t.PreferredTone)
	}
	return nil
}

// ToneOrDefault resolves an unset preferred tone to friendly.
func (t TicketRequest) ToneOrDefault() Tone {
	if t.PreferredTone == "" {
		return ToneFriendly
	}
	return t.PreferredTone
}
