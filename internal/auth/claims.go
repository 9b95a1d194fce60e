package auth

import "skyward-mro/shopfloor/internal/constants"

// UserClaims is what handlers see after authentication, regardless of
// how the request was authenticated.
type UserClaims interface {
	UserID() string
	Name() string
	Role() constants.ShopRole
	Source() string
}

// JWTClaims is the bearer-token implementation of UserClaims.
type JWTClaims struct {
	UserUUID  string
	NameValue string
	RoleValue constants.ShopRole
}

func (c *JWTClaims) UserID() string           { return c.UserUUID }
func (c *JWTClaims) Name() string             { return c.NameValue }
func (c *JWTClaims) Role() constants.ShopRole { return c.RoleValue }
func (c *JWTClaims) Source() string           { return "JWT" }
