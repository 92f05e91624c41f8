package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/resona-acoustics/resona/internal/api/handlers"
	"github.com/resona-acoustics/resona/internal/evaluation"
	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, api huma.API, s3Service storage.S3Service, evaluationRepo repository.EvaluationRepository, materialRepo repository.MaterialRepository, evaluationSvc evaluation.EvaluationService, defaultEdition string) {
	evaluationHandler := handlers.NewEvaluationHandler(evaluationRepo, s3Service, evaluationSvc)
	catalogHandler := handlers.NewCatalogHandler(materialRepo, defaultEdition)

	huma.Register(api, huma.Operation{
		OperationID: "createEvaluation",
		Method:      http.MethodPost,
		Path:        "/api/evaluations",
		Summary:     "Create a new evaluation",
		Description: "Stores a room design and starts the reverberation evaluation",
		Tags:        []string{"Evaluation"},
	}, evaluationHandler.CreateEvaluation)

	huma.Register(api, huma.Operation{
		OperationID: "getEvaluationStatus",
		Method:      http.MethodGet,
		Path:        "/api/evaluations/{id}/status",
		Summary:     "Get evaluation status",
		Description: "Returns the current status and progress of an evaluation",
		Tags:        []string{"Evaluation"},
	}, evaluationHandler.GetEvaluationStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getEvaluationResults",
		Method:      http.MethodGet,
		Path:        "/api/evaluations/{id}/results",
		Summary:     "Get evaluation results",
		Description: "Returns the predicted reverberation time, absorption curves and compliance report",
		Tags:        []string{"Evaluation"},
	}, evaluationHandler.GetEvaluationResults)

	huma.Register(api, huma.Operation{
		OperationID: "attachMeasurement",
		Method:      http.MethodPost,
		Path:        "/api/evaluations/{id}/measurement",
		Summary:     "Attach a measurement export",
		Description: "Returns a pre-signed upload URL for a Dirac or REW reverberation export",
		Tags:        []string{"Evaluation"},
	}, evaluationHandler.AttachMeasurement)

	huma.Register(api, huma.Operation{
		OperationID: "startEvaluation",
		Method:      http.MethodPost,
		Path:        "/api/evaluations/{id}/process",
		Summary:     "Run an evaluation",
		Description: "Re-runs the evaluation, typically after a measurement upload",
		Tags:        []string{"Evaluation"},
	}, evaluationHandler.StartEvaluation)

	huma.Register(api, huma.Operation{
		OperationID: "listRoomTypes",
		Method:      http.MethodGet,
		Path:        "/api/room-types",
		Summary:     "List usage categories",
		Description: "Lists the room usage categories of one standard edition",
		Tags:        []string{"Catalog"},
	}, catalogHandler.ListRoomTypes)

	huma.Register(api, huma.Operation{
		OperationID: "getRoomTypeTarget",
		Method:      http.MethodGet,
		Path:        "/api/room-types/{category}/target",
		Summary:     "Get a category's target envelope",
		Description: "Evaluates the optimal reverberation time and tolerance envelope at a room volume",
		Tags:        []string{"Catalog"},
	}, catalogHandler.GetRoomTypeTarget)

	huma.Register(api, huma.Operation{
		OperationID: "listMaterials",
		Method:      http.MethodGet,
		Path:        "/api/materials",
		Summary:     "List absorption materials",
		Description: "Lists the absorption material library",
		Tags:        []string{"Catalog"},
	}, catalogHandler.ListMaterials)

	huma.Register(api, huma.Operation{
		OperationID: "getMaterial",
		Method:      http.MethodGet,
		Path:        "/api/materials/{id}",
		Summary:     "Get an absorption material",
		Description: "Returns one material library entry",
		Tags:        []string{"Catalog"},
	}, catalogHandler.GetMaterial)
}
