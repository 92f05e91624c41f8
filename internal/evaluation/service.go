// Package evaluation runs the asynchronous evaluation pipeline: it
// rebuilds a room from its stored design, predicts the reverberation
// time, checks target-curve compliance and stores the results.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/resona-acoustics/resona/internal/importers"
	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/internal/storage"
	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
	"github.com/resona-acoustics/resona/pkg/acoustics/reverb"
	"github.com/resona-acoustics/resona/pkg/acoustics/room"
	"github.com/resona-acoustics/resona/pkg/acoustics/standards"
	"github.com/resona-acoustics/resona/pkg/materials"
	"github.com/resona-acoustics/resona/pkg/models"
)

// Indoor climate defaults applied when the design leaves a field zero.
const (
	defaultTemperature = 20.0    // °C
	defaultHumidity    = 50.0    // %
	defaultPressure    = 101.325 // kPa
)

type EvaluationService interface {
	RunEvaluation(ctx context.Context, evaluationID uuid.UUID) error
}

type evaluationService struct {
	repository repository.EvaluationRepository
	store      storage.S3Service
	library    materials.Library
	registries map[string]*standards.Registry
	edition    string // default standard edition
}

func NewEvaluationService(repo repository.EvaluationRepository, store storage.S3Service, library materials.Library, defaultEdition string) EvaluationService {
	return &evaluationService{
		repository: repo,
		store:      store,
		library:    library,
		registries: map[string]*standards.Registry{
			"1998": standards.Edition1998(),
			"2023": standards.Edition2023(),
		},
		edition: defaultEdition,
	}
}

// RunEvaluation executes the full pipeline for one evaluation. Input
// defects fail the evaluation record instead of returning an error;
// only infrastructure failures propagate to the caller.
func (s *evaluationService) RunEvaluation(ctx context.Context, evaluationID uuid.UUID) error {
	if err := s.repository.UpdateStatus(ctx, evaluationID, models.StatusProcessing, 10); err != nil {
		return err
	}

	evaluation, err := s.repository.GetByID(ctx, evaluationID)
	if err != nil {
		return err
	}
	design := evaluation.Design

	r, err := s.buildRoom(&design)
	if err != nil {
		s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Invalid room design: %v", err))
		return nil
	}

	if err := s.repository.UpdateStatus(ctx, evaluationID, models.StatusProcessing, 40); err != nil {
		return err
	}

	total, alphaMean, err := r.Absorption()
	if err != nil {
		s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Invalid absorption inventory: %v", err))
		return nil
	}

	model, ok := reverb.ForName(design.Model, 0)
	if !ok {
		s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Unknown reverberation model %q", design.Model))
		return nil
	}
	predicted, err := r.Predict(model)
	if err != nil {
		s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Prediction failed: %v", err))
		return nil
	}
	// Report the concrete formula the decision table picked.
	modelName := model.Name()
	if composite, ok := model.(reverb.Composite); ok {
		modelName = fmt.Sprintf("composite/%s", composite.Select(total, r.Volume, r.SurfaceArea()).Name())
	}

	if err := s.repository.UpdateStatus(ctx, evaluationID, models.StatusProcessing, 70); err != nil {
		return err
	}

	var compliance *models.ComplianceReport
	if design.Category != "" {
		compliance, err = s.checkCompliance(predicted, &design, r.Volume)
		if err != nil {
			s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Compliance check failed: %v", err))
			return nil
		}
	}

	var measured []models.BandPoint
	if evaluation.MeasurementS3Key != nil {
		curve, err := s.loadMeasurement(ctx, evaluation)
		if err != nil {
			s.repository.UpdateError(ctx, evaluationID, fmt.Sprintf("Measurement import failed: %v", err))
			return nil
		}
		measured = models.CurvePoints(curve)
	}

	if err := s.repository.UpdateStatus(ctx, evaluationID, models.StatusProcessing, 90); err != nil {
		return err
	}

	results := &models.EvaluationResults{
		ID:              uuid.New().String(),
		EvaluationID:    evaluation.ID,
		Model:           modelName,
		T60:             models.CurvePoints(predicted),
		AlphaMean:       models.CurvePoints(alphaMean),
		TotalAbsorption: models.CurvePoints(total),
		Measured:        measured,
		Compliance:      compliance,
		CreatedAt:       time.Now(),
	}

	if err := s.repository.StoreResults(ctx, results); err != nil {
		return err
	}

	log.Info().
		Str("evaluationID", evaluation.ID).
		Str("model", modelName).
		Bool("compliance", compliance != nil).
		Msg("Evaluation completed")

	return s.repository.UpdateStatus(ctx, evaluationID, models.StatusCompleted, 100)
}

// buildRoom rebuilds the room from its stored design, resolving
// materials through the library. Inline coefficient overrides shadow
// the library entry for that surface.
func (s *evaluationService) buildRoom(design *models.RoomDesign) (*room.Room, error) {
	temperature := design.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	humidity := design.Humidity
	if humidity == 0 {
		humidity = defaultHumidity
	}
	pressure := design.Pressure
	if pressure == 0 {
		pressure = defaultPressure
	}

	r, err := room.New(design.Name, design.Description, design.Volume, temperature, humidity, pressure)
	if err != nil {
		return nil, err
	}
	r.BoundingArea = design.BoundingArea

	for _, surface := range design.Surfaces {
		lib := s.library
		if len(surface.Coefficients) > 0 {
			curve, err := models.PointsCurve(surface.Coefficients)
			if err != nil {
				return nil, fmt.Errorf("surface %q: %w", surface.MaterialID, err)
			}
			lib = overrideLibrary(s.library, surface.MaterialID, curve)
		}
		if err := r.AddSurface(lib, surface.MaterialID, surface.Area); err != nil {
			return nil, err
		}
	}
	for _, opening := range design.Openings {
		if err := r.AddOpening(s.library, opening.MaterialID, opening.Area, opening.HostID); err != nil {
			return nil, err
		}
	}
	for _, object := range design.Objects {
		if err := r.AddObject(s.library, object.MaterialID, object.Count); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// overrideLibrary shadows one material id with inline coefficients,
// falling back to the base library for everything else.
func overrideLibrary(base materials.Library, id string, coefficients bands.Curve) materials.Library {
	overlay := materials.NewInMemory([]materials.Material{{ID: id, Name: id, Coefficients: coefficients}})
	return chained{overlay, base}
}

type chained []materials.Library

func (c chained) Get(id string) (*materials.Material, error) {
	var lastErr error
	for _, lib := range c {
		m, err := lib.Get(id)
		if err == nil {
			return m, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *evaluationService) registry(edition string) (*standards.Registry, error) {
	if edition == "" {
		edition = s.edition
	}
	reg, ok := s.registries[edition]
	if !ok {
		return nil, fmt.Errorf("unknown standard edition %q", edition)
	}
	return reg, nil
}

func (s *evaluationService) checkCompliance(predicted bands.Curve, design *models.RoomDesign, volume float64) (*models.ComplianceReport, error) {
	reg, err := s.registry(design.Edition)
	if err != nil {
		return nil, err
	}
	report, err := reg.CheckCompliance(predicted, design.Category, volume)
	if err != nil {
		return nil, err
	}

	out := &models.ComplianceReport{
		Category:    report.Category,
		Edition:     reg.Edition(),
		OptimalLow:  report.OptimalLow,
		OptimalHigh: report.OptimalHigh,
		Pass:        report.Pass,
	}
	if report.VolumeWarning != nil {
		out.VolumeWarning = report.VolumeWarning.Error()
	}
	for _, band := range report.Bands {
		bc := models.ComplianceBand{
			Frequency: band.Frequency,
			Predicted: band.Predicted,
			Deviation: band.Deviation,
			Governed:  band.Governed,
			Pass:      band.Pass,
		}
		if band.Governed {
			bc.Min, bc.Max = band.Min, band.Max
		}
		out.Bands = append(out.Bands, bc)
	}
	return out, nil
}

// loadMeasurement downloads and parses the attached measurement export,
// averaging the measurement runs into a single curve.
func (s *evaluationService) loadMeasurement(ctx context.Context, evaluation *models.Evaluation) (bands.Curve, error) {
	data, err := s.store.DownloadFile(ctx, *evaluation.MeasurementS3Key)
	if err != nil {
		return bands.Curve{}, err
	}

	format := ""
	if evaluation.MeasurementFormat != nil {
		format = *evaluation.MeasurementFormat
	}

	var measurement *importers.Measurement
	switch format {
	case "dirac":
		measurement, err = importers.ParseDirac(strings.NewReader(string(data)))
	case "rew":
		quantity := "T30"
		if evaluation.MeasurementQuantity != nil && *evaluation.MeasurementQuantity != "" {
			quantity = *evaluation.MeasurementQuantity
		}
		var export *importers.REWExport
		export, err = importers.ParseREW(strings.NewReader(string(data)), importers.ResolutionOctave)
		if err == nil {
			measurement, err = importers.MergeREW([]*importers.REWExport{export}, quantity)
		}
	default:
		err = errors.New("unknown measurement format " + format)
	}
	if err != nil {
		return bands.Curve{}, err
	}
	return measurement.MeanCurve()
}
