package attention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(actions []SuggestedAction) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Kind
	}
	return out
}

func TestSuggestActions(t *testing.T) {
	unpaid := ActionContext{PaidInFull: false, BalanceDueCents: 15000}
	paid := ActionContext{PaidInFull: true}

	t.Run("payment collection carries the balance", func(t *testing.T) {
		actions := SuggestActions(TypePaymentCollection, unpaid)
		assert.Contains(t, kinds(actions), "collect_payment")

		for _, a := range actions {
			if a.Kind == "collect_payment" {
				assert.Equal(t, "15000", a.Payload["amount_cents"])
			}
		}
	})

	t.Run("closure differs by payment state", func(t *testing.T) {
		assert.Contains(t, kinds(SuggestActions(TypeBookingClosure, paid)), "transition")
		assert.Contains(t, kinds(SuggestActions(TypeBookingClosure, unpaid)), "collect_payment")
		assert.NotContains(t, kinds(SuggestActions(TypeBookingClosure, unpaid)), "transition")
	})

	t.Run("every type gets the generic fallback", func(t *testing.T) {
		for tt := range validTypes {
			actions := SuggestActions(tt, paid)
			assert.NotEmpty(t, actions, "type %s", tt)
			last := actions[len(actions)-1]
			assert.Equal(t, "review", last.Kind, "type %s", tt)
			assert.Equal(t, "Open booking", last.Label, "type %s", tt)
		}
	})

	t.Run("confirmation types suggest transitions", func(t *testing.T) {
		assert.Contains(t, kinds(SuggestActions(TypeDeliveryConfirmation, paid)), "transition")
		assert.Contains(t, kinds(SuggestActions(TypePickupConfirmation, paid)), "transition")
	})

	t.Run("cancellation request is explicit", func(t *testing.T) {
		assert.Contains(t, kinds(SuggestActions(TypeCancellationRequest, unpaid)), "cancel")
	})
}
