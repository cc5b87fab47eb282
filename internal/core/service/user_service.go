package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

// UserService serves the settings page: reading and editing one's own profile.
type UserService struct {
	repo   ports.UserRepository
	hasher passwordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: newPasswordHasher(bcryptCost), log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile replaces name, lastname and nickname, and the password when
// one is given. Tokens already issued keep their old nickname until expiry.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) error {
	if blank(in.Name, in.Lastname, in.Nickname) {
		return domain.NewValidationError("Name, lastname and nickname are required")
	}

	upd := domain.ProfileUpdate{
		Name:     in.Name,
		Lastname: in.Lastname,
		Nickname: in.Nickname,
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = hash
	}

	if err := s.repo.UpdateProfile(ctx, in.UserID, upd); err != nil {
		return err
	}

	s.log.Info().Str("user_id", in.UserID).Bool("password_changed", upd.PasswordHash != "").Msg("profile updated")
	return nil
}
