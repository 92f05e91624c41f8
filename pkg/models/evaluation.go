package models

import (
	"time"
)

// Evaluation statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// CreateEvaluationRequest represents a request to evaluate a room design
type CreateEvaluationRequest struct {
	Body struct {
		SessionID string     `json:"session_id" minLength:"10" maxLength:"50" required:"true" doc:"Client session identifier"`
		Design    RoomDesign `json:"design" required:"true" doc:"Room design to evaluate"`
	}
}

// CreateEvaluationResponseBody is the body of the create evaluation response
type CreateEvaluationResponseBody struct {
	ID     string `json:"id" doc:"Evaluation unique identifier"`
	Status string `json:"status" enum:"pending,processing,completed,failed" doc:"Initial evaluation status"`
}

// CreateEvaluationResponse represents the response from creating an evaluation
type CreateEvaluationResponse struct {
	Body CreateEvaluationResponseBody
}

// GetEvaluationStatusRequest represents a request to get evaluation status
type GetEvaluationStatusRequest struct {
	ID string `path:"id" doc:"Evaluation ID"`
}

// GetEvaluationStatusResponseBody is the body of the status response
type GetEvaluationStatusResponseBody struct {
	ID        string  `json:"id" doc:"Evaluation ID"`
	Status    string  `json:"status" enum:"pending,processing,completed,failed" doc:"Evaluation status"`
	Progress  int     `json:"progress" minimum:"0" maximum:"100" doc:"Evaluation progress percentage"`
	Message   string  `json:"message,omitempty" doc:"Human-readable status message"`
	ResultsID *string `json:"results_id,omitempty" doc:"Results ID when evaluation completes"`
}

// GetEvaluationStatusResponse represents the current status of an evaluation
type GetEvaluationStatusResponse struct {
	Body GetEvaluationStatusResponseBody
}

// GetEvaluationResultsRequest represents a request to get evaluation results
type GetEvaluationResultsRequest struct {
	ID string `path:"id" doc:"Evaluation ID"`
}

// ComplianceBand is the per-band verdict against the target envelope.
type ComplianceBand struct {
	Frequency float64 `json:"frequency" doc:"Band center frequency in Hz"`
	Predicted float64 `json:"predicted" doc:"Predicted T60 in seconds"`
	Min       float64 `json:"min,omitempty" doc:"Lower envelope bound in seconds"`
	Max       float64 `json:"max,omitempty" doc:"Upper envelope bound in seconds"`
	Deviation float64 `json:"deviation" doc:"Signed distance to the violated bound, zero inside the envelope"`
	Governed  bool    `json:"governed" doc:"False for bands the standard leaves ungoverned"`
	Pass      bool    `json:"pass" doc:"Whether the band lies inside the envelope"`
}

// ComplianceReport compares predicted T60 against a usage category's
// tolerance envelope.
type ComplianceReport struct {
	Category      string           `json:"category" doc:"Room usage category"`
	Edition       string           `json:"edition" doc:"Standard edition the envelope comes from"`
	OptimalLow    float64          `json:"optimal_low" doc:"Lower optimal T60 at the room volume, in seconds"`
	OptimalHigh   float64          `json:"optimal_high" doc:"Upper optimal T60 at the room volume, in seconds"`
	Bands         []ComplianceBand `json:"bands" doc:"Per-band verdicts"`
	Pass          bool             `json:"pass" doc:"Whether every governed band passes"`
	VolumeWarning string           `json:"volume_warning,omitempty" doc:"Set when the room volume lies outside the category's valid range"`
}

// GetEvaluationResultsResponseBody is the body of the results response
type GetEvaluationResultsResponseBody struct {
	ID              string            `json:"id" doc:"Results ID"`
	Model           string            `json:"model" doc:"Reverberation model that produced the prediction"`
	T60             []BandPoint       `json:"t60" doc:"Predicted reverberation time per band, in seconds"`
	AlphaMean       []BandPoint       `json:"alpha_mean" doc:"Mean absorption coefficient per band"`
	TotalAbsorption []BandPoint       `json:"total_absorption" doc:"Total equivalent absorption area per band, in m²"`
	Measured        []BandPoint       `json:"measured,omitempty" doc:"Measured T60 per band when a measurement was attached"`
	Compliance      *ComplianceReport `json:"compliance,omitempty" doc:"Target-curve compliance when a usage category was given"`
	CreatedAt       time.Time         `json:"created_at" doc:"Results creation timestamp"`
}

// GetEvaluationResultsResponse represents the complete evaluation results
type GetEvaluationResultsResponse struct {
	Body GetEvaluationResultsResponseBody
}

// AttachMeasurementRequest represents a request for a measurement upload URL
type AttachMeasurementRequest struct {
	ID   string `path:"id" doc:"Evaluation ID"`
	Body struct {
		FileSize int64  `json:"file_size" minimum:"1" maximum:"10485760" required:"true" doc:"Export file size in bytes"`
		Format   string `json:"format" enum:"dirac,rew" required:"true" doc:"Measurement export format"`
		Quantity string `json:"quantity,omitempty" enum:"T60,EDT,T20,T30,Topt" doc:"Decay quantity to read from REW exports; T60 for Dirac"`
	}
}

// AttachMeasurementResponseBody is the body of the attach measurement response
type AttachMeasurementResponseBody struct {
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for the export upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// AttachMeasurementResponse represents the response with a measurement upload URL
type AttachMeasurementResponse struct {
	Body AttachMeasurementResponseBody
}

// StartEvaluationRequest represents a request to (re)run an evaluation
type StartEvaluationRequest struct {
	ID string `path:"id" doc:"Evaluation ID"`
}

// StartEvaluationResponse represents the response from starting an evaluation
type StartEvaluationResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// Evaluation represents the core evaluation entity (for internal use)
type Evaluation struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Status    string     `json:"status"`
	Progress  int        `json:"progress"`
	Design    RoomDesign `json:"design"`

	// Measurement export attached for prediction-vs-measurement
	// comparison, if any.
	MeasurementS3Key    *string `json:"measurement_s3_key,omitempty"`
	MeasurementFormat   *string `json:"measurement_format,omitempty"`
	MeasurementQuantity *string `json:"measurement_quantity,omitempty"`

	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// EvaluationResults represents the stored evaluation results
type EvaluationResults struct {
	ID              string            `json:"id"`
	EvaluationID    string            `json:"evaluation_id"`
	Model           string            `json:"model"`
	T60             []BandPoint       `json:"t60"`
	AlphaMean       []BandPoint       `json:"alpha_mean"`
	TotalAbsorption []BandPoint       `json:"total_absorption"`
	Measured        []BandPoint       `json:"measured,omitempty"`
	Compliance      *ComplianceReport `json:"compliance,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}
