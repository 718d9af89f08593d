package mealplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// Completer is the generation backend. Satisfied by aichat.Client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	ai        Completer
	groceries GroceryListRepository
	saved     SavedRecipeRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(ai Completer, groceries GroceryListRepository, saved SavedRecipeRepository, logger zerolog.Logger) *Service {
	return &Service{
		ai:        ai,
		groceries: groceries,
		saved:     saved,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateGroceryList asks the model for a week of groceries tailored to the
// patient's profile and stores the result under the current week. Persistence
// is best-effort: a storage failure is logged but the generated items are
// still returned.
func (s *Service) GenerateGroceryList(ctx context.Context, patientID uuid.UUID, p *Profile) ([]GroceryItem, error) {
	content, err := s.ai.Complete(ctx, systemPrompt, groceryPrompt(p))
	if err != nil {
		s.logger.Error().Err(err).Msg("grocery generation upstream failure")
		return nil, err
	}

	items, err := parseGroceryItems(content)
	if err != nil {
		s.logger.Error().Str("content", content).Msg("failed to parse grocery list")
		return nil, err
	}

	weekStart := WeekStart(s.now())
	if err := s.groceries.UpsertWeek(ctx, patientID, weekStart, items); err != nil {
		s.logger.Error().Err(err).
			Str("patient_id", patientID.String()).
			Str("week_start", weekStart).
			Msg("failed to persist grocery list")
	}
	return items, nil
}

// GenerateRecipes asks the model for BTF recipes. Nothing is persisted; the
// patient saves recipes individually.
func (s *Service) GenerateRecipes(ctx context.Context, p *Profile, count int) ([]Recipe, error) {
	content, err := s.ai.Complete(ctx, systemPrompt, recipePrompt(p, count))
	if err != nil {
		s.logger.Error().Err(err).Msg("recipe generation upstream failure")
		return nil, err
	}

	recipes, err := parseRecipes(content)
	if err != nil {
		s.logger.Error().Str("content", content).Msg("failed to parse recipes")
		return nil, err
	}
	return recipes, nil
}

func (s *Service) SaveRecipe(ctx context.Context, patientID uuid.UUID, r Recipe) (*SavedRecipe, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%w: recipe name is required", apperr.ErrValidation)
	}
	sr := &SavedRecipe{PatientID: patientID, Recipe: r}
	if err := s.saved.Create(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *Service) ListSavedRecipes(ctx context.Context, patientID uuid.UUID) ([]*SavedRecipe, error) {
	return s.saved.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteSavedRecipe(ctx context.Context, patientID, id uuid.UUID) error {
	return s.saved.Delete(ctx, patientID, id)
}

// GetWeekList returns the patient's list for the current week.
func (s *Service) GetWeekList(ctx context.Context, patientID uuid.UUID) (*GroceryList, error) {
	return s.groceries.GetWeek(ctx, patientID, WeekStart(s.now()))
}

// PutWeekList replaces the current week's list with the patient's edits,
// checked flags included.
func (s *Service) PutWeekList(ctx context.Context, patientID uuid.UUID, items []GroceryItem) (*GroceryList, error) {
	weekStart := WeekStart(s.now())
	if err := s.groceries.UpsertWeek(ctx, patientID, weekStart, items); err != nil {
		return nil, err
	}
	return s.groceries.GetWeek(ctx, patientID, weekStart)
}
