package services

import (
	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/pkg/auth"
)

// CanAccessOrder reports whether the identity may view or mutate the
// order: admins always, buyers only their own.
func CanAccessOrder(claims *auth.Claims, order *models.Order) bool {
	if claims == nil {
		return false
	}
	return claims.Role == models.RoleAdmin || claims.UserID == order.UserID
}

// CanManage reports whether the identity may perform administrative
// mutations (status and payment updates, deletes, admin listings).
func CanManage(claims *auth.Claims) bool {
	return claims != nil && claims.Role == models.RoleAdmin
}
