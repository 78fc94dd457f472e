package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// The role name falls back to the role id when Role is not preloaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = roleNameByID(user.RoleID)
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Role:      role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func roleNameByID(roleID int) string {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.RoleAdmin
	case entity.RoleIDStaff:
		return entity.RoleStaff
	default:
		return ""
	}
}
