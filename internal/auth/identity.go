package auth

import "github.com/gin-gonic/gin"

type Role string

const (
	RoleOwner   Role = "owner"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// Identity is the resolved caller of a request. Handlers read it from the
// gin context and pass it down unchanged.
type Identity struct {
	UserID int  `json:"user_id"`
	GymID  int  `json:"gym_id"`
	Role   Role `json:"role"`
}

func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}

const (
	identityKey = "identity"
	claimsKey   = "token_claims"
)

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func GetUserID(c *gin.Context) (int, bool) {
	id, ok := GetIdentity(c)
	if !ok {
		return 0, false
	}
	return id.UserID, true
}

func GetClaims(c *gin.Context) (*JWTClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*JWTClaims)
	return claims, ok
}
