package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/resona-acoustics/resona/internal/evaluation"
	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/internal/storage"
	"github.com/resona-acoustics/resona/pkg/models"
)

// EvaluationHandler handles evaluation-related HTTP requests
type EvaluationHandler struct {
	repo          repository.EvaluationRepository
	s3Service     storage.S3Service
	evaluationSvc evaluation.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(repo repository.EvaluationRepository, s3Service storage.S3Service, evaluationSvc evaluation.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		repo:          repo,
		s3Service:     s3Service,
		evaluationSvc: evaluationSvc,
	}
}

// CreateEvaluation stores a room design and starts evaluating it
func (h *EvaluationHandler) CreateEvaluation(ctx context.Context, req *models.CreateEvaluationRequest) (*models.CreateEvaluationResponse, error) {
	design := req.Body.Design
	log.Info().Str("room", design.Name).Float64("volume", design.Volume).Str("model", design.Model).Msg("Creating new evaluation")

	if design.Volume <= 0 {
		return nil, huma.Error400BadRequest("Room volume must be positive.", nil)
	}
	if len(design.Surfaces) == 0 {
		return nil, huma.Error400BadRequest("Room design needs at least one surface.", nil)
	}

	evaluationID := uuid.New()
	record := &models.Evaluation{
		ID:        evaluationID.String(),
		SessionID: req.Body.SessionID,
		Status:    models.StatusPending,
		Progress:  0,
		Design:    design,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, record); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create evaluation", err)
	}
	log.Info().Str("evaluationID", record.ID).Str("sessionID", req.Body.SessionID).Msg("Evaluation record created")

	go func() {
		if err := h.evaluationSvc.RunEvaluation(context.Background(), evaluationID); err != nil {
			h.repo.UpdateError(context.Background(), evaluationID, fmt.Sprintf("Evaluation failed: %v", err))
		}
	}()

	return &models.CreateEvaluationResponse{
		Body: models.CreateEvaluationResponseBody{
			ID:     record.ID,
			Status: record.Status,
		},
	}, nil
}

// GetEvaluationStatus returns the current status of an evaluation
func (h *EvaluationHandler) GetEvaluationStatus(ctx context.Context, req *models.GetEvaluationStatusRequest) (*models.GetEvaluationStatusResponse, error) {
	evaluationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid evaluation ID", err)
	}

	record, err := h.repo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, huma.Error404NotFound("Evaluation not found", err)
	}

	message := h.generateStatusMessage(record.Status, record.Progress)
	if record.Status == models.StatusFailed && record.ErrorMsg != nil {
		message = *record.ErrorMsg
	}

	var resultsID *string
	if record.Status == models.StatusCompleted {
		results, err := h.repo.GetResults(ctx, evaluationID)
		if err == nil && results != nil {
			resultsID = &results.ID
		}
	}

	return &models.GetEvaluationStatusResponse{
		Body: models.GetEvaluationStatusResponseBody{
			ID:        record.ID,
			Status:    record.Status,
			Progress:  record.Progress,
			Message:   message,
			ResultsID: resultsID,
		},
	}, nil
}

// GetEvaluationResults returns the evaluation results
func (h *EvaluationHandler) GetEvaluationResults(ctx context.Context, req *models.GetEvaluationResultsRequest) (*models.GetEvaluationResultsResponse, error) {
	evaluationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid evaluation ID", err)
	}

	record, err := h.repo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, huma.Error404NotFound("Evaluation not found", err)
	}

	if record.Status != models.StatusCompleted {
		return nil, huma.Error409Conflict("Evaluation not yet completed",
			fmt.Errorf("evaluation status is %s", record.Status))
	}

	results, err := h.repo.GetResults(ctx, evaluationID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get results", err)
	}

	return &models.GetEvaluationResultsResponse{
		Body: models.GetEvaluationResultsResponseBody{
			ID:              results.ID,
			Model:           results.Model,
			T60:             results.T60,
			AlphaMean:       results.AlphaMean,
			TotalAbsorption: results.TotalAbsorption,
			Measured:        results.Measured,
			Compliance:      results.Compliance,
			CreatedAt:       results.CreatedAt,
		},
	}, nil
}

// AttachMeasurement records an incoming measurement export and returns
// a pre-signed upload URL for it
func (h *EvaluationHandler) AttachMeasurement(ctx context.Context, req *models.AttachMeasurementRequest) (*models.AttachMeasurementResponse, error) {
	evaluationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid evaluation ID", err)
	}

	if _, err := h.repo.GetByID(ctx, evaluationID); err != nil {
		return nil, huma.Error404NotFound("Evaluation not found", err)
	}

	quantity := req.Body.Quantity
	if quantity == "" {
		quantity = "T30"
	}
	if req.Body.Format == "dirac" {
		quantity = "T60"
	}

	key := fmt.Sprintf("measurements/%s.%s.txt", evaluationID, req.Body.Format)
	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, key, "text/plain")
	if err != nil {
		if strings.Contains(err.Error(), "invalid content type") {
			return nil, huma.Error400BadRequest("Export format not supported.", err)
		}
		return nil, huma.Error400BadRequest("Failed to prepare upload. Please try again.", err)
	}

	if err := h.repo.AttachMeasurement(ctx, evaluationID, key, req.Body.Format, quantity); err != nil {
		return nil, huma.Error500InternalServerError("Failed to record measurement", err)
	}

	log.Info().Str("evaluationID", req.ID).Str("format", req.Body.Format).Str("quantity", quantity).Msg("Measurement upload URL issued")
	return &models.AttachMeasurementResponse{
		Body: models.AttachMeasurementResponseBody{
			UploadURL: uploadURL,
			ExpiresIn: int((15 * time.Minute).Seconds()),
		},
	}, nil
}

// StartEvaluation re-runs an evaluation, typically after a measurement upload
func (h *EvaluationHandler) StartEvaluation(ctx context.Context, req *models.StartEvaluationRequest) (*models.StartEvaluationResponse, error) {
	evaluationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid evaluation ID", err)
	}

	if _, err := h.repo.GetByID(ctx, evaluationID); err != nil {
		return nil, huma.Error404NotFound("Evaluation not found", err)
	}

	log.Info().Str("evaluationID", req.ID).Msg("Starting evaluation run")
	go func() {
		if err := h.evaluationSvc.RunEvaluation(context.Background(), evaluationID); err != nil {
			h.repo.UpdateError(context.Background(), evaluationID, fmt.Sprintf("Evaluation failed: %v", err))
		}
	}()

	return &models.StartEvaluationResponse{
		Body: struct {
			Message string `json:"message" doc:"Confirmation message"`
		}{
			Message: "Evaluation started successfully",
		},
	}, nil
}

// generateStatusMessage creates a human-readable status message
func (h *EvaluationHandler) generateStatusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Evaluation queued..."
	case models.StatusProcessing:
		if progress < 40 {
			return "Building room model..."
		} else if progress < 70 {
			return "Predicting reverberation time..."
		} else {
			return "Checking target-curve compliance..."
		}
	case models.StatusCompleted:
		return "Evaluation complete!"
	case models.StatusFailed:
		return "Evaluation failed. Please check the room design."
	default:
		return "Unknown status"
	}
}
