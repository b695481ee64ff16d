package policy

import (
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestAllows_DecisionTable(t *testing.T) {
	admin := &entity.User{Email: "root@bazar.test", Admin: true}
	alice := &entity.User{Email: "alice@bazar.test"}
	bob := &entity.User{Email: "bob@bazar.test"}

	tests := []struct {
		name      string
		requester *entity.User
		owner     Owner
		want      bool
	}{
		{name: "owner on own resource", requester: alice, owner: Owner{Email: alice.Email}, want: true},
		{name: "non-owner on someone else's resource", requester: bob, owner: Owner{Email: alice.Email}, want: false},
		{name: "admin on someone else's resource", requester: admin, owner: Owner{Email: alice.Email}, want: true},
		{name: "admin on own resource", requester: admin, owner: Owner{Email: admin.Email}, want: true},
		{name: "nil requester", requester: nil, owner: Owner{Email: alice.Email}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The rule is uniform across actions.
			for _, action := range []Action{ActionRead, ActionWrite, ActionDelete} {
				assert.Equal(t, tt.want, Allows(tt.requester, tt.owner, action))
			}
		})
	}
}

func TestAllows_IsSymmetricForPeers(t *testing.T) {
	alice := &entity.User{Email: "alice@bazar.test"}
	bob := &entity.User{Email: "bob@bazar.test"}

	// Neither of two non-admin peers may touch the other's resources.
	assert.False(t, Allows(alice, Owner{Email: bob.Email}, ActionWrite))
	assert.False(t, Allows(bob, Owner{Email: alice.Email}, ActionWrite))
}

func TestAuthorize(t *testing.T) {
	alice := &entity.User{Email: "alice@bazar.test"}

	assert.NoError(t, Authorize(alice, Owner{Email: alice.Email}, ActionWrite))

	err := Authorize(alice, Owner{Email: "bob@bazar.test"}, ActionWrite)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
