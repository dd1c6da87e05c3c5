package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/services"
)

const seedReason = "demo seed"

// Seeder creates a small demo catalog for development.
// Everything goes through the catalog service so seeded rows are audited like any other change.
type Seeder struct {
	catalog *services.CatalogService
	logger  *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(catalog *services.CatalogService, logger *slog.Logger) *Seeder {
	return &Seeder{catalog: catalog, logger: logger}
}

// Run executes all seeders. Rows that already exist are left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	s.logger.Info("running database seeders")

	for i := 1; i <= 5; i++ {
		desc := fmt.Sprintf("Handheld radio %d", i)
		_, err := s.catalog.CreateRadioUnit(ctx, services.CreateRadioUnitInput{
			Code:        fmt.Sprintf("RF%02d", i),
			Description: &desc,
			Active:      true,
			Reason:      seedReason,
		})
		if err := skipExisting(err); err != nil {
			return fmt.Errorf("seed radio unit: %w", err)
		}
	}

	_, err := s.catalog.CreateEmployee(ctx, services.CreateEmployeeInput{
		DocumentNumber: "1000000001",
		FullName:       "Demo Operator",
		Active:         true,
		Reason:         seedReason,
	})
	if err := skipExisting(err); err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}

	employeeKey := "1000000001"
	_, err = s.catalog.CreateOperatorAccount(ctx, services.CreateOperatorAccountInput{
		Username:    "demo",
		EmployeeKey: &employeeKey,
		Active:      true,
		Reason:      seedReason,
	})
	if err := skipExisting(err); err != nil {
		return fmt.Errorf("seed operator account: %w", err)
	}

	s.logger.Info("database seeding completed")
	return nil
}

func skipExisting(err error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil
	}
	return err
}
