package payroll

import (
	"context"
	"fmt"

	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
)

// ConfigService manages the payroll reference data: rate entries,
// fixed components, and the engine settings row.
type ConfigService struct {
	settingsRepo  payroll.SettingsRepository
	rateRepo      payroll.RateRepository
	componentRepo payroll.ComponentRepository
}

func NewConfigService(
	settingsRepo payroll.SettingsRepository,
	rateRepo payroll.RateRepository,
	componentRepo payroll.ComponentRepository,
) *ConfigService {
	return &ConfigService{
		settingsRepo:  settingsRepo,
		rateRepo:      rateRepo,
		componentRepo: componentRepo,
	}
}

func (s *ConfigService) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.ToSettingsResponse(settings), nil
}

// UpdateSettings replaces the settings row. The existing row's identity
// is kept so there is only ever one row.
func (s *ConfigService) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings := payroll.Settings{
		OvertimeHourlyRate:      req.OvertimeHourlyRate,
		LatePenaltyAmount:       req.LatePenaltyAmount,
		LatePenaltyBlockMinutes: req.LatePenaltyBlockMinutes,
		DefaultAnnualLeaveDays:  req.DefaultAnnualLeaveDays,
	}
	if existing, err := s.settingsRepo.Get(ctx); err == nil {
		settings.ID = existing.ID
	} else if err != payroll.ErrSettingsNotFound {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return payroll.ToSettingsResponse(updated), nil
}

func (s *ConfigService) CreateRateEntry(ctx context.Context, req payroll.CreateRateEntryRequest) (payroll.RateEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RateEntryResponse{}, err
	}
	from, to := req.Window()
	entry, err := s.rateRepo.CreateEntry(ctx, payroll.RateEntry{
		PositionID:    req.PositionID,
		WorkUnitID:    req.WorkUnitID,
		SeniorityTier: req.SeniorityTier,
		HourlyRate:    req.HourlyRate,
		ValidFrom:     from,
		ValidTo:       to,
	})
	if err != nil {
		return payroll.RateEntryResponse{}, fmt.Errorf("failed to create rate entry: %w", err)
	}
	return payroll.ToRateEntryResponse(entry), nil
}

func (s *ConfigService) ListRateEntries(ctx context.Context) ([]payroll.RateEntryResponse, error) {
	entries, err := s.rateRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate entries: %w", err)
	}
	out := make([]payroll.RateEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, payroll.ToRateEntryResponse(entry))
	}
	return out, nil
}

func (s *ConfigService) DeleteRateEntry(ctx context.Context, id string) error {
	return s.rateRepo.DeleteEntry(ctx, id)
}

func (s *ConfigService) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}
	from, to := req.Window()
	component, err := s.componentRepo.Create(ctx, payroll.FixedComponent{
		Name:      req.Name,
		Category:  payroll.ComponentCategory(req.Category),
		Kind:      payroll.ComponentKind(req.Kind),
		Amount:    req.Amount,
		ValidFrom: from,
		ValidTo:   to,
	})
	if err != nil {
		return payroll.ComponentResponse{}, fmt.Errorf("failed to create component: %w", err)
	}
	return payroll.ToComponentResponse(component), nil
}

func (s *ConfigService) ListComponents(ctx context.Context) ([]payroll.ComponentResponse, error) {
	components, err := s.componentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	out := make([]payroll.ComponentResponse, 0, len(components))
	for _, component := range components {
		out = append(out, payroll.ToComponentResponse(component))
	}
	return out, nil
}

func (s *ConfigService) DeleteComponent(ctx context.Context, id string) error {
	return s.componentRepo.Delete(ctx, id)
}
