package attention

import "strconv"

// ActionContext carries the booking facts the action table keys on.
type ActionContext struct {
	PaidInFull      bool
	BalanceDueCents int64
}

// SuggestActions builds the advisory action list for an item from its
// type and the booking's payment state. The mapping is exhaustive over
// item types; an unknown type yields only the generic review action.
func SuggestActions(t Type, ctx ActionContext) []SuggestedAction {
	var actions []SuggestedAction

	switch t {
	case TypeDeliveryConfirmation:
		actions = append(actions,
			SuggestedAction{Label: "Confirm delivered", Kind: "transition", Variant: "primary"},
			SuggestedAction{Label: "Contact crew", Kind: "contact", Variant: "secondary"},
		)
	case TypePickupConfirmation:
		actions = append(actions,
			SuggestedAction{Label: "Confirm picked up", Kind: "transition", Variant: "primary"},
			SuggestedAction{Label: "Contact crew", Kind: "contact", Variant: "secondary"},
		)
	case TypePaymentCollection:
		actions = append(actions, SuggestedAction{
			Label:   "Collect balance",
			Kind:    "collect_payment",
			Variant: "primary",
			Payload: map[string]string{"amount_cents": strconv.FormatInt(ctx.BalanceDueCents, 10)},
		})
		actions = append(actions,
			SuggestedAction{Label: "Contact customer", Kind: "contact", Variant: "secondary"},
		)
	case TypeBookingClosure:
		if ctx.PaidInFull {
			actions = append(actions,
				SuggestedAction{Label: "Mark completed", Kind: "transition", Variant: "primary"},
			)
		} else {
			actions = append(actions,
				SuggestedAction{
					Label:   "Collect balance before closing",
					Kind:    "collect_payment",
					Variant: "warning",
					Payload: map[string]string{"amount_cents": strconv.FormatInt(ctx.BalanceDueCents, 10)},
				},
			)
		}
	case TypeIssueReported:
		actions = append(actions,
			SuggestedAction{Label: "Review issue", Kind: "review", Variant: "primary"},
			SuggestedAction{Label: "Contact customer", Kind: "contact", Variant: "secondary"},
		)
	case TypeCancellationRequest:
		actions = append(actions,
			SuggestedAction{Label: "Cancel booking", Kind: "cancel", Variant: "danger"},
			SuggestedAction{Label: "Review refund amount", Kind: "review", Variant: "secondary"},
		)
	}

	// Every type, including manual_review, carries the generic fallback.
	actions = append(actions,
		SuggestedAction{Label: "Open booking", Kind: "review", Variant: "default"},
	)
	return actions
}
