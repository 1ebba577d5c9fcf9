package access

import (
	"errors"
	"testing"

	"kinetica/internal/apperr"
	"kinetica/internal/auth"

	"github.com/stretchr/testify/assert"
)

var (
	owner   = auth.Identity{UserID: 1, GymID: 10, Role: auth.RoleOwner}
	trainer = auth.Identity{UserID: 2, GymID: 10, Role: auth.RoleTrainer}
)

func TestScope(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		id         auth.Identity
		wantClause string
		wantArgs   []interface{}
	}{
		{"owner members", Members, owner, "m.gym_id = ?", []interface{}{10}},
		{"owner sessions", Sessions, owner, "m.gym_id = ?", []interface{}{10}},
		{"owner packages", MemberPackages, owner, "m.gym_id = ?", []interface{}{10}},
		{"trainer members", Members, trainer, "m.gym_id = ? AND m.trainer_id = ?", []interface{}{10, 2}},
		{"trainer sessions", Sessions, trainer, "m.gym_id = ? AND s.trainer_id = ?", []interface{}{10, 2}},
		{"trainer packages", MemberPackages, trainer, "m.gym_id = ? AND m.trainer_id = ?", []interface{}{10, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Scope(tt.kind, tt.id)
			assert.Equal(t, tt.wantClause, p.Clause)
			assert.Equal(t, tt.wantArgs, p.Args)
		})
	}
}

func TestPredicateAnd(t *testing.T) {
	p := Scope(Sessions, trainer).And("s.id = ?", 99)

	assert.Equal(t, "s.id = ? AND m.gym_id = ? AND s.trainer_id = ?", p.Clause)
	assert.Equal(t, []interface{}{99, 10, 2}, p.Args)
}

func TestCanMutateSession(t *testing.T) {
	assert.NoError(t, CanMutateSession(owner, 7))
	assert.NoError(t, CanMutateSession(trainer, 2))

	err := CanMutateSession(trainer, 3)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestCanViewSession(t *testing.T) {
	assert.NoError(t, CanViewSession(owner, 7))
	assert.NoError(t, CanViewSession(trainer, 2))
	assert.ErrorIs(t, CanViewSession(trainer, 3), apperr.ErrForbidden)
}

func TestCanAccessMember(t *testing.T) {
	assigned, other := 2, 3

	assert.NoError(t, CanAccessMember(owner, nil))
	assert.NoError(t, CanAccessMember(trainer, &assigned))
	assert.ErrorIs(t, CanAccessMember(trainer, &other), apperr.ErrForbidden)
	assert.ErrorIs(t, CanAccessMember(trainer, nil), apperr.ErrForbidden)
}
