package handlers

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/pkg/acoustics/standards"
	"github.com/resona-acoustics/resona/pkg/models"
)

// CatalogHandler serves the usage-category registry and the material
// library.
type CatalogHandler struct {
	registries map[string]*standards.Registry
	edition    string
	materials  repository.MaterialRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(materials repository.MaterialRepository, defaultEdition string) *CatalogHandler {
	return &CatalogHandler{
		registries: map[string]*standards.Registry{
			"1998": standards.Edition1998(),
			"2023": standards.Edition2023(),
		},
		edition:   defaultEdition,
		materials: materials,
	}
}

func (h *CatalogHandler) registry(edition string) (*standards.Registry, error) {
	if edition == "" {
		edition = h.edition
	}
	reg, ok := h.registries[edition]
	if !ok {
		return nil, huma.Error400BadRequest("Unknown standard edition: "+edition, nil)
	}
	return reg, nil
}

// ListRoomTypes lists the usage categories of one standard edition
func (h *CatalogHandler) ListRoomTypes(ctx context.Context, req *models.ListRoomTypesRequest) (*models.ListRoomTypesResponse, error) {
	reg, err := h.registry(req.Edition)
	if err != nil {
		return nil, err
	}

	categories := reg.Categories()
	sort.Strings(categories)

	resp := &models.ListRoomTypesResponse{}
	resp.Body.Edition = reg.Edition()
	for _, category := range categories {
		rt, err := reg.Lookup(category)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to read category", err)
		}
		resp.Body.RoomTypes = append(resp.Body.RoomTypes, models.RoomTypeInfo{
			Category:   category,
			LimitClass: rt.LimitClass,
			VolumeMin:  rt.VolumeMin,
			VolumeMax:  rt.VolumeMax,
		})
	}
	return resp, nil
}

// GetRoomTypeTarget evaluates a category's target envelope at a volume
func (h *CatalogHandler) GetRoomTypeTarget(ctx context.Context, req *models.GetRoomTypeTargetRequest) (*models.GetRoomTypeTargetResponse, error) {
	reg, err := h.registry(req.Edition)
	if err != nil {
		return nil, err
	}

	rt, err := reg.Lookup(req.Category)
	if err != nil {
		return nil, huma.Error404NotFound("Unknown usage category", err)
	}

	low, high, err := reg.OptimalT60(req.Category, req.Volume)
	var volumeWarning string
	if err != nil {
		var rangeErr *standards.VolumeRangeError
		if !errors.As(err, &rangeErr) {
			return nil, huma.Error500InternalServerError("Failed to evaluate target", err)
		}
		volumeWarning = rangeErr.Error()
	}

	body := models.GetRoomTypeTargetResponseBody{
		Category:      req.Category,
		Edition:       reg.Edition(),
		OptimalLow:    low,
		OptimalHigh:   high,
		VolumeWarning: volumeWarning,
	}
	for i := range rt.UpperLimit.Len() {
		freq, upper := rt.UpperLimit.Band(i)
		_, lower := rt.LowerLimit.Band(i)
		if math.IsNaN(upper) || math.IsNaN(lower) {
			continue
		}
		body.UpperLimit = append(body.UpperLimit, models.BandPoint{Frequency: freq, Value: upper * high})
		body.LowerLimit = append(body.LowerLimit, models.BandPoint{Frequency: freq, Value: lower * low})
	}

	return &models.GetRoomTypeTargetResponse{Body: body}, nil
}

// ListMaterials lists the material library
func (h *CatalogHandler) ListMaterials(ctx context.Context, req *struct{}) (*models.ListMaterialsResponse, error) {
	mats, err := h.materials.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list materials", err)
	}
	resp := &models.ListMaterialsResponse{}
	resp.Body.Materials = mats
	return resp, nil
}

// GetMaterial returns one material library entry
func (h *CatalogHandler) GetMaterial(ctx context.Context, req *models.GetMaterialRequest) (*models.GetMaterialResponse, error) {
	material, err := h.materials.GetByID(ctx, req.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Material not found", err)
	}
	return &models.GetMaterialResponse{Body: *material}, nil
}
