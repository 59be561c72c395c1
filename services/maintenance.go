package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/komunitas-muda/backoffice/database/repositories"
)

// SweepResult reports what one maintenance run touched.
type SweepResult struct {
	RegistrationsClosed int64 `json:"registrations_closed"`
	ClubsHidden         int64 `json:"clubs_hidden"`
}

// MaintenanceService runs the club housekeeping sweeps: closing
// registration windows that passed their end date and hiding clubs
// whose period ended. Sweeps run on demand from an admin endpoint.
type MaintenanceService struct {
	clubs repositories.ClubRepository
}

func NewMaintenanceService(clubs repositories.ClubRepository) *MaintenanceService {
	return &MaintenanceService{clubs: clubs}
}

func (s *MaintenanceService) Sweep(ctx context.Context) (*SweepResult, error) {
	now := time.Now()

	closed, err := s.clubs.CloseExpiredRegistrations(ctx, now)
	if err != nil {
		return nil, err
	}

	hidden, err := s.clubs.HideEndedClubs(ctx, now)
	if err != nil {
		return nil, err
	}

	if closed > 0 || hidden > 0 {
		slog.Info("Club maintenance sweep finished",
			slog.String("type", "sys"),
			slog.Int64("registrations_closed", closed),
			slog.Int64("clubs_hidden", hidden))
	}
	return &SweepResult{RegistrationsClosed: closed, ClubsHidden: hidden}, nil
}
