package policy

import (
	"testing"

	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity(roles ...entity.Role) *entity.User {
	return &entity.User{
		ID:    uuid.New(),
		Email: "who@example.com",
		Roles: roles,
	}
}

func TestAuthorize_NilIdentity(t *testing.T) {
	for _, op := range []Operation{
		OpAccountRead, OpVendorCreate, OpVendorRead, OpVendorApprove,
		OpPayoutRequest, OpVendorPublicRead,
	} {
		err := Authorize(nil, op, Resource{})
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated, string(op))
	}
}

func TestAuthorize_StaffOnlyOperations(t *testing.T) {
	staff := newIdentity(entity.RoleStaff)
	customer := newIdentity(entity.RoleCustomer)
	vendor := newIdentity(entity.RoleVendor)

	staffOps := []Operation{
		OpVendorApprove, OpVendorReject, OpVendorAdminRead,
		OpVendorAdminUpdate, OpVendorCredit,
	}

	for _, op := range staffOps {
		assert.NoError(t, Authorize(staff, op, Resource{}), string(op))
		assert.ErrorIs(t, Authorize(customer, op, Resource{}), domainerrors.ErrForbidden, string(op))
		assert.ErrorIs(t, Authorize(vendor, op, Resource{}), domainerrors.ErrForbidden, string(op))
	}
}

func TestAuthorize_VendorCreateRequiresVendorRole(t *testing.T) {
	vendor := newIdentity(entity.RoleCustomer, entity.RoleVendor)
	customer := newIdentity(entity.RoleCustomer)

	assert.NoError(t, Authorize(vendor, OpVendorCreate, Resource{}))
	assert.ErrorIs(t, Authorize(customer, OpVendorCreate, Resource{}), domainerrors.ErrForbidden)
}

func TestAuthorize_OwnerOnlyOperations(t *testing.T) {
	owner := newIdentity(entity.RoleVendor)
	stranger := newIdentity(entity.RoleVendor)
	staff := newIdentity(entity.RoleStaff)

	res := Resource{OwnerID: owner.ID.String(), VendorState: entity.StateDraft}

	ownerOps := []Operation{OpVendorRead, OpVendorUpdate, OpVendorSubmit, OpVendorReopen, OpPayoutRequest}

	for _, op := range ownerOps {
		assert.NoError(t, Authorize(owner, op, res), string(op))
		// Non-owners learn nothing about an unapproved profile's existence.
		assert.ErrorIs(t, Authorize(stranger, op, res), domainerrors.ErrNotFound, string(op))
		// Staff review goes through its own operations, not the owner's.
		assert.ErrorIs(t, Authorize(staff, op, res), domainerrors.ErrNotFound, string(op))
	}
}

func TestAuthorize_ApprovedProfileReadIsHonestlyForbidden(t *testing.T) {
	owner := newIdentity(entity.RoleVendor)
	stranger := newIdentity(entity.RoleVendor)

	res := Resource{OwnerID: owner.ID.String(), VendorState: entity.StateApproved}

	// An approved profile is publicly listed, so there is nothing to hide.
	err := Authorize(stranger, OpVendorRead, res)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Everything else about it stays owner-only and invisible.
	err = Authorize(stranger, OpPayoutRequest, res)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuthorize_PublicRead(t *testing.T) {
	customer := newIdentity(entity.RoleCustomer)

	require.NoError(t, Authorize(customer, OpVendorPublicRead, Resource{VendorState: entity.StateApproved}))

	for _, state := range []entity.VerificationState{entity.StateDraft, entity.StatePending, entity.StateRejected} {
		err := Authorize(customer, OpVendorPublicRead, Resource{VendorState: state})
		assert.ErrorIs(t, err, domainerrors.ErrNotFound, state.String())
	}
}

func TestAuthorize_PayoutList(t *testing.T) {
	owner := newIdentity(entity.RoleVendor)
	staff := newIdentity(entity.RoleStaff)
	stranger := newIdentity(entity.RoleCustomer)

	res := Resource{OwnerID: owner.ID.String()}

	assert.NoError(t, Authorize(owner, OpPayoutList, res))
	assert.NoError(t, Authorize(staff, OpPayoutList, res))
	assert.ErrorIs(t, Authorize(stranger, OpPayoutList, res), domainerrors.ErrNotFound)
}

func TestAuthorize_AccountOperations(t *testing.T) {
	identity := newIdentity(entity.RoleCustomer)
	other := newIdentity(entity.RoleCustomer)

	assert.NoError(t, Authorize(identity, OpAccountRead, Resource{OwnerID: identity.ID.String()}))
	assert.NoError(t, Authorize(identity, OpAccountUpdate, Resource{OwnerID: identity.ID.String()}))
	assert.ErrorIs(t, Authorize(identity, OpAccountRead, Resource{OwnerID: other.ID.String()}), domainerrors.ErrForbidden)
}

func TestAuthorize_UnknownOperationDenied(t *testing.T) {
	identity := newIdentity(entity.RoleCustomer, entity.RoleVendor, entity.RoleStaff)

	err := Authorize(identity, Operation("vendor.destroy"), Resource{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
