package training

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jlahtela/ridgeline/internal/sqlite"
)

// SessionType names the four session collections for generic operations.
type SessionType string

const (
	SessionCardio       SessionType = "cardio"
	SessionStrength     SessionType = "strength"
	SessionClimbing     SessionType = "climbing"
	SessionConditioning SessionType = "conditioning"
)

// Service wires the decision engine to the SQLite-backed document stores.
type Service struct {
	repo   *repository
	logger *slog.Logger
}

// NewService creates a training service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
	}
}

// SaveCheckIn stores the daily check-in and returns its recovery assessment.
//
// The classification is a snapshot: a first save classifies against the
// current baseline, while saving over an existing date preserves the
// original classification. The baseline is recomputed after every save.
func (s *Service) SaveCheckIn(ctx context.Context, checkIn DailyCheckIn) (Assessment, error) {
	baseline, err := s.repo.baseline.Get(ctx)
	if err != nil {
		return Assessment{}, fmt.Errorf("get baseline: %w", err)
	}

	var assessment Assessment
	if err = s.repo.checkIns.Update(ctx, func(checkIns *[]DailyCheckIn) (bool, error) {
		key := dateKey(checkIn.Date)
		for i, existing := range *checkIns {
			if dateKey(existing.Date) == key {
				// Edit: preserve the original classification snapshot.
				checkIn.Classification = existing.Classification
				(*checkIns)[i] = checkIn
				if checkIn.Classification != nil {
					assessment = *checkIn.Classification
				}
				return true, nil
			}
		}
		assessment = Classify(checkIn, baseline)
		checkIn.Classification = &assessment
		*checkIns = append(*checkIns, checkIn)
		return true, nil
	}); err != nil {
		return Assessment{}, fmt.Errorf("save check-in: %w", err)
	}

	if err = s.recomputeBaseline(ctx, checkIn.Date); err != nil {
		return Assessment{}, err
	}
	return assessment, nil
}

// ReclassifyCheckIn recomputes a check-in's classification snapshot against
// the current baseline. This is the only way an existing snapshot changes.
func (s *Service) ReclassifyCheckIn(ctx context.Context, date time.Time) (Assessment, error) {
	baseline, err := s.repo.baseline.Get(ctx)
	if err != nil {
		return Assessment{}, fmt.Errorf("get baseline: %w", err)
	}

	var assessment Assessment
	found := false
	if err = s.repo.checkIns.Update(ctx, func(checkIns *[]DailyCheckIn) (bool, error) {
		key := dateKey(date)
		for i := range *checkIns {
			if dateKey((*checkIns)[i].Date) == key {
				assessment = Classify((*checkIns)[i], baseline)
				(*checkIns)[i].Classification = &assessment
				found = true
				return true, nil
			}
		}
		return false, nil
	}); err != nil {
		return Assessment{}, fmt.Errorf("reclassify check-in: %w", err)
	}
	if !found {
		return Assessment{}, fmt.Errorf("check-in %s: %w", dateKey(date), ErrNotFound)
	}
	return assessment, nil
}

func (s *Service) recomputeBaseline(ctx context.Context, today time.Time) error {
	checkIns, err := s.repo.checkIns.Get(ctx)
	if err != nil {
		return fmt.Errorf("get check-ins: %w", err)
	}
	prior, err := s.repo.baseline.Get(ctx)
	if err != nil {
		return fmt.Errorf("get baseline: %w", err)
	}
	if err = s.repo.baseline.Set(ctx, ComputeBaseline(checkIns, today, prior)); err != nil {
		return fmt.Errorf("save baseline: %w", err)
	}
	return nil
}

// CheckInForDate returns the check-in for a calendar day, or ErrNotFound.
func (s *Service) CheckInForDate(ctx context.Context, date time.Time) (DailyCheckIn, error) {
	checkIns, err := s.repo.checkIns.Get(ctx)
	if err != nil {
		return DailyCheckIn{}, fmt.Errorf("get check-ins: %w", err)
	}
	key := dateKey(date)
	for _, c := range checkIns {
		if dateKey(c.Date) == key {
			return c, nil
		}
	}
	return DailyCheckIn{}, fmt.Errorf("check-in %s: %w", key, ErrNotFound)
}

// Baseline returns the current personal baseline.
func (s *Service) Baseline(ctx context.Context) (PersonalBaseline, error) {
	baseline, err := s.repo.baseline.Get(ctx)
	if err != nil {
		return PersonalBaseline{}, fmt.Errorf("get baseline: %w", err)
	}
	return baseline, nil
}

// SetManualBaseline stores the manual HRV/RHR fallbacks used before the
// rolling baseline establishes.
func (s *Service) SetManualBaseline(ctx context.Context, hrv, restingHR *float64) error {
	if err := s.repo.baseline.Update(ctx, func(b *PersonalBaseline) (bool, error) {
		b.ManualHRV = hrv
		b.ManualRestingHR = restingHR
		return true, nil
	}); err != nil {
		return fmt.Errorf("update baseline: %w", err)
	}
	return nil
}

// RestAdvisory returns the consecutive-rest-day advisory, empty when the
// recent run is shorter than two days.
func (s *Service) RestAdvisory(ctx context.Context) (string, error) {
	checkIns, err := s.repo.checkIns.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("get check-ins: %w", err)
	}
	baseline, err := s.repo.baseline.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("get baseline: %w", err)
	}
	return ConsecutiveRestAdvisory(checkIns, baseline), nil
}

// LogCardio appends a cardio session and returns its load summary.
func (s *Service) LogCardio(ctx context.Context, session CardioSession) (LoadSummary, error) {
	if session.ID == "" {
		session.ID = rand.Text()
	}
	if err := s.repo.log.Update(ctx, func(log *WorkoutLog) (bool, error) {
		log.Cardio = append(log.Cardio, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("log cardio session: %w", err)
	}
	return SummarizeSessionLoad(CardioStimulus(session)), nil
}

// LogStrength appends a strength session, updates the per-exercise
// progression series, and returns the load summary.
func (s *Service) LogStrength(ctx context.Context, session StrengthSession) (LoadSummary, error) {
	if session.ID == "" {
		session.ID = rand.Text()
	}
	if err := s.repo.log.Update(ctx, func(log *WorkoutLog) (bool, error) {
		log.Strength = append(log.Strength, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("log strength session: %w", err)
	}
	if err := s.repo.progression.Update(ctx, func(history *ProgressionHistory) (bool, error) {
		UpdateStrengthProgression(history, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("update strength progression: %w", err)
	}
	return SummarizeSessionLoad(StrengthStimulus(session)), nil
}

// LogClimbing appends a climbing session, updates the discipline's send
// series, and returns the load summary.
func (s *Service) LogClimbing(ctx context.Context, session ClimbingSession) (LoadSummary, error) {
	if session.ID == "" {
		session.ID = rand.Text()
	}
	if err := s.repo.log.Update(ctx, func(log *WorkoutLog) (bool, error) {
		log.Climbing = append(log.Climbing, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("log climbing session: %w", err)
	}
	if err := s.repo.progression.Update(ctx, func(history *ProgressionHistory) (bool, error) {
		UpdateClimbingProgression(history, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("update climbing progression: %w", err)
	}
	return SummarizeSessionLoad(ClimbingStimulus(session)), nil
}

// LogConditioning appends a conditioning session and returns its load summary.
func (s *Service) LogConditioning(ctx context.Context, session ConditioningSession) (LoadSummary, error) {
	if session.ID == "" {
		session.ID = rand.Text()
	}
	if err := s.repo.log.Update(ctx, func(log *WorkoutLog) (bool, error) {
		log.Conditioning = append(log.Conditioning, session)
		return true, nil
	}); err != nil {
		return LoadSummary{}, fmt.Errorf("log conditioning session: %w", err)
	}
	return SummarizeSessionLoad(ConditioningStimulus(session)), nil
}

// DeleteSession removes a session by type and id.
func (s *Service) DeleteSession(ctx context.Context, sessionType SessionType, id string) error {
	found := false
	if err := s.repo.log.Update(ctx, func(log *WorkoutLog) (bool, error) {
		switch sessionType {
		case SessionCardio:
			log.Cardio, found = deleteByID(log.Cardio, id, func(s CardioSession) string { return s.ID })
		case SessionStrength:
			log.Strength, found = deleteByID(log.Strength, id, func(s StrengthSession) string { return s.ID })
		case SessionClimbing:
			log.Climbing, found = deleteByID(log.Climbing, id, func(s ClimbingSession) string { return s.ID })
		case SessionConditioning:
			log.Conditioning, found = deleteByID(log.Conditioning, id,
				func(s ConditioningSession) string { return s.ID })
		}
		return found, nil
	}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !found {
		return fmt.Errorf("%s session %s: %w", sessionType, id, ErrNotFound)
	}
	return nil
}

func deleteByID[T any](sessions []T, id string, idOf func(T) string) ([]T, bool) {
	for i, session := range sessions {
		if idOf(session) == id {
			return append(sessions[:i], sessions[i+1:]...), true
		}
	}
	return sessions, false
}

// SessionsForWeek returns the sessions within [weekStart, weekStart+6d] for
// the activity log.
func (s *Service) SessionsForWeek(ctx context.Context, weekStart time.Time) (WorkoutLog, error) {
	log, err := s.repo.log.Get(ctx)
	if err != nil {
		return WorkoutLog{}, fmt.Errorf("get workout log: %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 6) //nolint:mnd // inclusive 7-day week.

	var week WorkoutLog
	for _, session := range log.Cardio {
		if inWindow(session.Date, weekStart, weekEnd) {
			week.Cardio = append(week.Cardio, session)
		}
	}
	for _, session := range log.Strength {
		if inWindow(session.Date, weekStart, weekEnd) {
			week.Strength = append(week.Strength, session)
		}
	}
	for _, session := range log.Climbing {
		if inWindow(session.Date, weekStart, weekEnd) {
			week.Climbing = append(week.Climbing, session)
		}
	}
	for _, session := range log.Conditioning {
		if inWindow(session.Date, weekStart, weekEnd) {
			week.Conditioning = append(week.Conditioning, session)
		}
	}
	return week, nil
}

// DailyRecommendation builds the recommendation card for a day. Today's
// check-in classification snapshot supplies the recovery tier; without a
// check-in the builder falls back to moderate with a warning note.
func (s *Service) DailyRecommendation(ctx context.Context, today time.Time) (Recommendation, error) {
	config, err := s.repo.activeConfig.Get(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get active config: %w", err)
	}
	checkIns, err := s.repo.checkIns.Get(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get check-ins: %w", err)
	}
	log, err := s.repo.log.Get(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get workout log: %w", err)
	}
	objectives, err := s.repo.objectives.Get(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get objectives: %w", err)
	}

	var assessment *Assessment
	key := dateKey(today)
	for _, c := range checkIns {
		if dateKey(c.Date) == key && c.Classification != nil {
			assessment = c.Classification
			break
		}
	}

	return BuildRecommendation(RecommendationInput{
		Config:     config,
		Assessment: assessment,
		Log:        log,
		Objectives: objectives,
		Today:      today,
		PlanWeek:   nil,
	}), nil
}

// WeeklyReport builds the weekly status snapshot for [weekStart, weekStart+6d].
func (s *Service) WeeklyReport(ctx context.Context, weekStart time.Time) (WeeklyStatus, error) {
	log, err := s.repo.log.Get(ctx)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("get workout log: %w", err)
	}
	history, err := s.repo.progression.Get(ctx)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("get progression history: %w", err)
	}
	config, err := s.repo.activeConfig.Get(ctx)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("get active config: %w", err)
	}
	objectives, err := s.repo.objectives.Get(ctx)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("get objectives: %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 6) //nolint:mnd // inclusive 7-day week.
	return BuildWeeklyStatus(log, history, config, objectives, weekStart, weekEnd), nil
}

// StimulusOverview returns the per-dimension breakdowns for a week.
func (s *Service) StimulusOverview(ctx context.Context, weekStart time.Time) ([]DimensionContext, error) {
	log, err := s.repo.log.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workout log: %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 6) //nolint:mnd // inclusive 7-day week.

	contexts := make([]DimensionContext, 0, NumDimensions)
	for d := range NumDimensions {
		contexts = append(contexts, BuildDimensionContext(log, weekStart, weekEnd, Dimension(d)))
	}
	return contexts, nil
}

// ApplyConfig activates a new training config, moving the previous active
// one to the append-only history. Acceptance is all-or-nothing.
func (s *Service) ApplyConfig(ctx context.Context, config TrainingConfig) error {
	previous, err := s.repo.activeConfig.Get(ctx)
	if err != nil {
		return fmt.Errorf("get active config: %w", err)
	}
	if previous != nil {
		if err = s.repo.configHistory.Update(ctx, func(history *[]TrainingConfig) (bool, error) {
			*history = append(*history, *previous)
			return true, nil
		}); err != nil {
			return fmt.Errorf("append config history: %w", err)
		}
	}
	config.AppliedAt = time.Now().UTC()
	if err = s.repo.activeConfig.Set(ctx, &config); err != nil {
		return fmt.Errorf("save active config: %w", err)
	}
	return nil
}

// ActiveConfig returns the active config, nil when none has been applied.
func (s *Service) ActiveConfig(ctx context.Context) (*TrainingConfig, error) {
	config, err := s.repo.activeConfig.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active config: %w", err)
	}
	return config, nil
}

// ConfigHistory returns the superseded configs, oldest first.
func (s *Service) ConfigHistory(ctx context.Context) ([]TrainingConfig, error) {
	history, err := s.repo.configHistory.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get config history: %w", err)
	}
	return history, nil
}

// ActivateObjective adds an objective to the active list.
func (s *Service) ActivateObjective(ctx context.Context, objective ActivatedObjective) error {
	if objective.ID == "" {
		objective.ID = rand.Text()
	}
	if objective.ActivatedAt.IsZero() {
		objective.ActivatedAt = time.Now().UTC()
	}
	if err := s.repo.objectives.Update(ctx, func(objectives *[]ActivatedObjective) (bool, error) {
		*objectives = append(*objectives, objective)
		return true, nil
	}); err != nil {
		return fmt.Errorf("activate objective: %w", err)
	}
	return nil
}

// Objectives returns the active objectives.
func (s *Service) Objectives(ctx context.Context) ([]ActivatedObjective, error) {
	objectives, err := s.repo.objectives.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get objectives: %w", err)
	}
	return objectives, nil
}

// DeactivateObjective archives an active objective. The transition is
// one-way: the objective leaves the active list permanently.
func (s *Service) DeactivateObjective(ctx context.Context, id string, readinessTier string) error {
	var archived *ArchivedObjective
	if err := s.repo.objectives.Update(ctx, func(objectives *[]ActivatedObjective) (bool, error) {
		for i, obj := range *objectives {
			if obj.ID != id {
				continue
			}
			archived = &ArchivedObjective{
				ID:              obj.ID,
				LibraryID:       obj.LibraryID,
				Name:            obj.Name,
				TargetDate:      obj.TargetDate,
				ActivatedAt:     obj.ActivatedAt,
				ArchivedAt:      time.Now().UTC(),
				ReadinessTier:   readinessTier,
				TrainingSummary: planSummary(obj),
			}
			*objectives = append((*objectives)[:i], (*objectives)[i+1:]...)
			return true, nil
		}
		return false, nil
	}); err != nil {
		return fmt.Errorf("deactivate objective: %w", err)
	}
	if archived == nil {
		return fmt.Errorf("objective %s: %w", id, ErrNotFound)
	}
	if err := s.repo.archived.Update(ctx, func(list *[]ArchivedObjective) (bool, error) {
		*list = append(*list, *archived)
		return true, nil
	}); err != nil {
		return fmt.Errorf("archive objective: %w", err)
	}
	return nil
}

func planSummary(obj ActivatedObjective) string {
	completed := 0
	for _, week := range obj.PlanWeeks {
		if week.Completed {
			completed++
		}
	}
	return fmt.Sprintf("%d of %d plan weeks completed", completed, len(obj.PlanWeeks))
}

// ArchivedObjectives returns the archived objectives.
func (s *Service) ArchivedObjectives(ctx context.Context) ([]ArchivedObjective, error) {
	archived, err := s.repo.archived.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get archived objectives: %w", err)
	}
	return archived, nil
}

// CompletePlanWeek marks one week of an objective's training plan completed.
func (s *Service) CompletePlanWeek(ctx context.Context, objectiveID string, weekNumber int) error {
	found := false
	if err := s.repo.objectives.Update(ctx, func(objectives *[]ActivatedObjective) (bool, error) {
		for i := range *objectives {
			if (*objectives)[i].ID != objectiveID {
				continue
			}
			for j := range (*objectives)[i].PlanWeeks {
				if (*objectives)[i].PlanWeeks[j].Number == weekNumber {
					(*objectives)[i].PlanWeeks[j].Completed = true
					found = true
					return true, nil
				}
			}
		}
		return false, nil
	}); err != nil {
		return fmt.Errorf("complete plan week: %w", err)
	}
	if !found {
		return fmt.Errorf("objective %s week %d: %w", objectiveID, weekNumber, ErrNotFound)
	}
	return nil
}

// Zones resolves the user's zone thresholds from preferences: custom zones
// when set, otherwise the chosen formula over the stored age. Without an age
// a default of 40 applies.
func (s *Service) Zones(ctx context.Context) (ZoneThresholds, error) {
	prefs, err := s.repo.prefs.Get(ctx)
	if err != nil {
		return ZoneThresholds{}, fmt.Errorf("get preferences: %w", err)
	}
	if prefs.CustomZones != nil {
		return *prefs.CustomZones, nil
	}
	age := prefs.Age
	if age == 0 {
		age = 40 //nolint:mnd // sensible default before the user sets an age.
	}
	if strings.EqualFold(prefs.ZoneMethod, "maf") {
		return ComputeZonesFromMAF(age), nil
	}
	return ComputeZonesFromAge(age), nil
}

// SetZoneMethod stores the zone derivation method ("age" or "maf") and age,
// clearing any custom zones.
func (s *Service) SetZoneMethod(ctx context.Context, method string, age int) error {
	if err := s.repo.prefs.Update(ctx, func(prefs *Preferences) (bool, error) {
		prefs.ZoneMethod = method
		prefs.Age = age
		prefs.CustomZones = nil
		return true, nil
	}); err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

// SetCustomZones validates and stores user-entered zone ceilings. Validation
// failures are returned as human-readable strings and nothing is stored.
func (s *Service) SetCustomZones(ctx context.Context, ceilings [4]int) ([]string, error) {
	zones, validationErrs := CustomZones(ceilings)
	if len(validationErrs) > 0 {
		return validationErrs, nil
	}
	if err := s.repo.prefs.Update(ctx, func(prefs *Preferences) (bool, error) {
		prefs.ZoneMethod = "custom"
		prefs.CustomZones = &zones
		return true, nil
	}); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return nil, nil
}

// GetPreferences returns the stored preferences.
func (s *Service) GetPreferences(ctx context.Context) (Preferences, error) {
	prefs, err := s.repo.prefs.Get(ctx)
	if err != nil {
		return Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences replaces the stored preferences.
func (s *Service) SavePreferences(ctx context.Context, prefs Preferences) error {
	if err := s.repo.prefs.Set(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
