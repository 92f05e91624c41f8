package evaluation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
	"github.com/resona-acoustics/resona/pkg/materials"
	"github.com/resona-acoustics/resona/pkg/models"
)

// MockEvaluationRepository implements repository.EvaluationRepository for testing
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	args := m.Called(ctx, evaluation)
	return args.Error(0)
}

func (m *MockEvaluationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Evaluation, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockEvaluationRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockEvaluationRepository) AttachMeasurement(ctx context.Context, id uuid.UUID, s3Key, format, quantity string) error {
	args := m.Called(ctx, id, s3Key, format, quantity)
	return args.Error(0)
}

func (m *MockEvaluationRepository) StoreResults(ctx context.Context, results *models.EvaluationResults) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockEvaluationRepository) GetResults(ctx context.Context, evaluationID uuid.UUID) (*models.EvaluationResults, error) {
	args := m.Called(ctx, evaluationID)
	return args.Get(0).(*models.EvaluationResults), args.Error(1)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func testLibrary() materials.Library {
	return materials.NewInMemory([]materials.Material{
		{ID: "plaster", Name: "Plaster on brick", Coefficients: bands.Uniform(bands.Octave, 0.1)},
		{ID: "seat", Name: "Upholstered seat", Coefficients: bands.Uniform(bands.Octave, 0.5)},
	})
}

func pendingEvaluation(id uuid.UUID, design models.RoomDesign) *models.Evaluation {
	return &models.Evaluation{
		ID:       id.String(),
		Status:   models.StatusPending,
		Progress: 0,
		Design:   design,
	}
}

func TestRunEvaluationSabine(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Lecture hall",
		Volume: 500,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "plaster", Area: 200},
		},
		Objects: []models.ObjectSpec{
			{MaterialID: "seat", Count: 10},
		},
		Model: "sabine",
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, models.StatusProcessing, mock.AnythingOfType("int")).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)

	var stored *models.EvaluationResults
	mockRepo.On("StoreResults", mock.Anything, mock.AnythingOfType("*models.EvaluationResults")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.EvaluationResults)
		}).Return(nil)
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, models.StatusCompleted, 100).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "sabine", stored.Model)
	// 200 m² at 0.1 plus ten seats at 0.5 gives 25 m² of absorption:
	// T60 = 0.163 * 500 / 25 = 3.26 s in every band.
	require.Len(t, stored.T60, 6)
	for _, pt := range stored.T60 {
		assert.InDelta(t, 3.26, pt.Value, 1e-9)
	}
	for _, pt := range stored.AlphaMean {
		assert.InDelta(t, 0.125, pt.Value, 1e-9)
	}
	assert.Nil(t, stored.Compliance)
	mockRepo.AssertExpectations(t)
}

func TestRunEvaluationCompositePicksFormula(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Small studio",
		Volume: 120,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "plaster", Area: 150},
		},
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)

	var stored *models.EvaluationResults
	mockRepo.On("StoreResults", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.EvaluationResults)
		}).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Mean absorption 0.1 in a 120 m³ room lands in the Sabine regime.
	assert.Equal(t, "composite/sabine", stored.Model)
}

func TestRunEvaluationWithCompliance(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Classroom",
		Volume: 200,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "plaster", Area: 220},
		},
		Objects: []models.ObjectSpec{
			{MaterialID: "seat", Count: 30},
		},
		Model:    "eyring",
		Category: "general-classrooms",
		Edition:  "2023",
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)

	var stored *models.EvaluationResults
	mockRepo.On("StoreResults", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.EvaluationResults)
		}).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.NotNil(t, stored.Compliance)
	assert.Equal(t, "general-classrooms", stored.Compliance.Category)
	assert.Equal(t, "2023", stored.Compliance.Edition)
	assert.Len(t, stored.Compliance.Bands, 6)
	assert.Positive(t, stored.Compliance.OptimalLow)
}

func TestRunEvaluationInvalidDesignFailsRecord(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Broken",
		Volume: -5,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "plaster", Area: 200},
		},
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, models.StatusProcessing, 10).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)
	mockRepo.On("UpdateError", mock.Anything, evaluationID, mock.AnythingOfType("string")).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "StoreResults", mock.Anything, mock.Anything)
}

func TestRunEvaluationUnknownMaterialFailsRecord(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Mystery",
		Volume: 100,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "unobtainium", Area: 50},
		},
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, models.StatusProcessing, 10).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)
	mockRepo.On("UpdateError", mock.Anything, evaluationID, mock.AnythingOfType("string")).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRunEvaluationInlineCoefficients(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Custom finish",
		Volume: 500,
		Surfaces: []models.SurfaceSpec{
			{
				MaterialID: "prototype-panel",
				Area:       250,
				Coefficients: []models.BandPoint{
					{Frequency: 125, Value: 0.2}, {Frequency: 250, Value: 0.2},
					{Frequency: 500, Value: 0.2}, {Frequency: 1000, Value: 0.2},
					{Frequency: 2000, Value: 0.2}, {Frequency: 4000, Value: 0.2},
				},
			},
		},
		Model: "sabine",
	}

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(pendingEvaluation(evaluationID, design), nil)

	var stored *models.EvaluationResults
	mockRepo.On("StoreResults", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.EvaluationResults)
		}).Return(nil)

	svc := NewEvaluationService(mockRepo, &MockS3Service{}, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// 250 m² at 0.2 gives 50 m²: T60 = 0.163 * 500 / 50 = 1.63 s.
	for _, pt := range stored.T60 {
		assert.InDelta(t, 1.63, pt.Value, 1e-9)
	}
}

func TestRunEvaluationWithDiracMeasurement(t *testing.T) {
	evaluationID := uuid.New()
	design := models.RoomDesign{
		Name:   "Measured hall",
		Volume: 500,
		Surfaces: []models.SurfaceSpec{
			{MaterialID: "plaster", Area: 200},
		},
		Model: "sabine",
	}

	diracExport := "Band\t125\t250\t500\t1000\t2000\t4000\n" +
		"\tHz\tHz\tHz\tHz\tHz\tHz\n" +
		"Pos 1\t3,40\t3,30\t3,20\t3,10\t3,00\t2,90\n" +
		"Number of Measurements\t1\t1\t1\t1\t1\t1\n"

	key := "measurements/export.dirac.txt"
	format := "dirac"
	quantity := "T60"
	record := pendingEvaluation(evaluationID, design)
	record.MeasurementS3Key = &key
	record.MeasurementFormat = &format
	record.MeasurementQuantity = &quantity

	mockRepo := &MockEvaluationRepository{}
	mockRepo.On("UpdateStatus", mock.Anything, evaluationID, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("GetByID", mock.Anything, evaluationID).Return(record, nil)

	var stored *models.EvaluationResults
	mockRepo.On("StoreResults", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.EvaluationResults)
		}).Return(nil)

	mockStore := &MockS3Service{}
	mockStore.On("DownloadFile", mock.Anything, key).Return([]byte(diracExport), nil)

	svc := NewEvaluationService(mockRepo, mockStore, testLibrary(), "2023")

	err := svc.RunEvaluation(context.Background(), evaluationID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.Len(t, stored.Measured, 6)
	assert.InDelta(t, 3.4, stored.Measured[0].Value, 1e-9)
	mockStore.AssertExpectations(t)
}
