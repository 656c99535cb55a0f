package contract

import (
	"errors"
	"testing"
)

func TestTicketRequestValidate(t *testing.T) {
	t.Parallel()

	valid := TicketRequest{
		TicketID:     "TCK-1",
		CustomerName: "Dana",
		Message:      "Please reset my account access",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TicketRequest)
	}{
		{"missing ticket id", func(r *TicketRequest) { r.TicketID = "  " }},
		{"missing customer name", func(r *TicketRequest) { r.CustomerName = "" }},
		{"short message", func(r *TicketRequest) { r.Message = "help" }},
		{"unknown tone", func(r *TicketRequest) { r.PreferredTone = "sarcastic" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := valid
			tc.mutate(&req)
			if err := req.Validate(); !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want validation error", err)
			}
		})
	}
}

func TestToneOrDefault(t *testing.T) {
	t.Parallel()

	if got := (TicketRequest{}).ToneOrDefault(); got != ToneFriendly {
		t.Fatalf("ToneOrDefault() = %q, want friendly", got)
	}
	if got := (TicketRequest{PreferredTone: ToneDirect}).ToneOrDefault(); got != ToneDirect {
		t.Fatalf("ToneOrDefault() = %q, want direct", got)
	}
}

func TestSLATargetMinutesPairs(t *testing.T) {
	t.Parallel()

	pairs := map[Urgency]int{
		UrgencyCritical: 15,
		UrgencyHigh:     60,
		UrgencyMedium:   240,
		UrgencyLow:      1440,
	}
	for urgency, want := range pairs {
		if got := urgency.SLATargetMinutes(); got != want {
			t.Fatalf("%s.SLATargetMinutes() = %d, want %d", urgency, got, want)
		}
	}
}
