package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionAction_Next(t *testing.T) {
	tests := []struct {
		name    string
		action  TransitionAction
		current VerificationState
		want    VerificationState
		ok      bool
	}{
		{name: "submit from draft", action: ActionSubmit, current: StateDraft, want: StatePending, ok: true},
		{name: "approve from pending", action: ActionApprove, current: StatePending, want: StateApproved, ok: true},
		{name: "reject from pending", action: ActionReject, current: StatePending, want: StateRejected, ok: true},
		{name: "reopen from rejected", action: ActionReopen, current: StateRejected, want: StateDraft, ok: true},

		{name: "submit from pending", action: ActionSubmit, current: StatePending, ok: false},
		{name: "submit from approved", action: ActionSubmit, current: StateApproved, ok: false},
		{name: "submit from rejected", action: ActionSubmit, current: StateRejected, ok: false},
		{name: "approve from draft", action: ActionApprove, current: StateDraft, ok: false},
		{name: "approve from approved", action: ActionApprove, current: StateApproved, ok: false},
		{name: "approve from rejected", action: ActionApprove, current: StateRejected, ok: false},
		{name: "reject from draft", action: ActionReject, current: StateDraft, ok: false},
		{name: "reject from rejected", action: ActionReject, current: StateRejected, ok: false},
		{name: "reopen from draft", action: ActionReopen, current: StateDraft, ok: false},
		{name: "reopen from pending", action: ActionReopen, current: StatePending, ok: false},
		{name: "reopen from approved", action: ActionReopen, current: StateApproved, ok: false},
		{name: "unknown action", action: TransitionAction("promote"), current: StateDraft, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.action.Next(tt.current)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, next)
			} else {
				// A refused action must not move the state.
				assert.Equal(t, tt.current, next)
			}
		})
	}
}

func TestVerificationState_Editable(t *testing.T) {
	assert.True(t, StateDraft.Editable())
	assert.True(t, StatePending.Editable())
	assert.False(t, StateApproved.Editable())
	assert.False(t, StateRejected.Editable())
}

func TestVerificationState_IsValid(t *testing.T) {
	for _, s := range []VerificationState{StateDraft, StatePending, StateApproved, StateRejected} {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, VerificationState("archived").IsValid())
	assert.False(t, VerificationState("").IsValid())
}

func TestVendorCategory_IsValid(t *testing.T) {
	for _, c := range []VendorCategory{CategoryPharmacy, CategorySchool, CategoryHardware, CategoryOther} {
		assert.True(t, c.IsValid())
	}
	assert.False(t, VendorCategory("restaurant").IsValid())
}
