package usecases

import (
	stderrors "errors"

	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// toProfile parses role and status; empty values are left for the entity
// to default.
func toProfile(username, password, email, phone, role, status string) (user.Profile, error) {
	p := user.Profile{
		Username: username,
		Password: password,
		Email:    email,
		Phone:    phone,
	}
	if role != "" {
		r, err := vo.NewRole(role)
		if err != nil {
			return p, errors.NewValidationError("invalid role", err.Error())
		}
		p.Role = r
	}
	if status != "" {
		s, err := shared.NewActiveStatus(status)
		if err != nil {
			return p, errors.NewValidationError("invalid status", err.Error())
		}
		p.Status = s
	}
	return p, nil
}

func lookupError(log logger.Interface, userID string, err error) error {
	if stderrors.Is(err, user.ErrUserNotFound) {
		return errors.NewNotFoundError("user not found", userID)
	}
	log.Errorw("failed to get user", "user_id", userID, "error", err)
	return errors.NewInternalError("failed to get user")
}
