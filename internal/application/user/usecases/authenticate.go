package usecases

import (
	"context"
	"crypto/subtle"
	stderrors "errors"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// TokenIssuer signs an access token for an authenticated user.
type TokenIssuer interface {
	Issue(username string, role vo.Role) (accessToken string, expiresIn int64, err error)
}

// SuperUser is the built-in administrator that is not stored with the
// other users.
type SuperUser struct {
	Username string
	Password string
}

func (s SuperUser) matches(username, password string) bool {
	if s.Username == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Username), []byte(username)) == 1 &&
		subtle.ConstantTimeCompare([]byte(s.Password), []byte(password)) == 1
}

type AuthenticateCommand struct {
	Username string
	Password string
}

type AuthenticateUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	superUser      SuperUser
	logger         logger.Interface
}

func NewAuthenticateUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	tokens TokenIssuer,
	superUser SuperUser,
	logger logger.Interface,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokens:         tokens,
		superUser:      superUser,
		logger:         logger,
	}
}

// Execute checks the super-user first, then the stored users. Every failure
// returns the same invalid credentials error.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*dto.LoginResponse, error) {
	if uc.superUser.matches(cmd.Username, cmd.Password) {
		return uc.issue(cmd.Username, vo.RoleAdmin)
	}

	u, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if !stderrors.Is(err, user.ErrUserNotFound) {
			uc.logger.Errorw("failed to look up user", "username", cmd.Username, "error", err)
		}
		return nil, errors.NewInvalidCredentialsError()
	}
	if !u.CheckPassword(cmd.Password, uc.passwordHasher) {
		uc.logger.Debugw("password mismatch", "username", cmd.Username)
		return nil, errors.NewInvalidCredentialsError()
	}

	return uc.issue(u.Username(), u.Role())
}

func (uc *AuthenticateUseCase) issue(username string, role vo.Role) (*dto.LoginResponse, error) {
	accessToken, expiresIn, err := uc.tokens.Issue(username, role)
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "username", username, "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user authenticated", "username", username, "role", role)
	return &dto.LoginResponse{
		Username:    username,
		Role:        role.String(),
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
