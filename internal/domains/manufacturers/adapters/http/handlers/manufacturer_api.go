package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	manufacturermapper "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/http/mapper"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/application"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirmapper "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/http/mapper"
	souvenirports "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	apierrors "github.com/Apurer/souvenir-registry/internal/shared/errors"
	"github.com/Apurer/souvenir-registry/internal/shared/params"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

// ManufacturerAPI wires HTTP transport with the manufacturer service and workflows.
type ManufacturerAPI struct {
	service   ports.Service
	souvenirs souvenirports.Service
	workflows ports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewManufacturerAPI creates the handlers. workflows may be nil, in which case
// deletes go straight to the service.
func NewManufacturerAPI(service ports.Service, souvenirs souvenirports.Service, workflows ports.WorkflowOrchestrator, responder *apierrors.ChainedResponder) *ManufacturerAPI {
	if responder == nil {
		responder = apierrors.NewChainedResponder("", ProblemFor)
	}
	return &ManufacturerAPI{service: service, souvenirs: souvenirs, workflows: workflows, responder: responder}
}

// Register mounts the manufacturer routes on r.
func (api *ManufacturerAPI) Register(r gin.IRouter) {
	r.POST("/manufacturers", api.AddManufacturer)
	r.GET("/manufacturers", api.ListManufacturers)
	r.GET("/manufacturers/:id", api.GetManufacturer)
	r.PUT("/manufacturers/:id", api.UpdateManufacturer)
	r.DELETE("/manufacturers/:id", api.DeleteManufacturer)
	r.GET("/manufacturers/:id/souvenirs", api.ListManufacturerSouvenirs)

	r.GET("/reports/manufacturers/by-max-price", api.ManufacturersByMaxPrice)
	r.GET("/reports/manufacturers/with-souvenirs", api.ManufacturersWithSouvenirs)
	r.GET("/reports/manufacturers/by-souvenir", api.ManufacturersOfSouvenirByYear)
	r.GET("/reports/countries", api.Countries)
}

// Post /v1/manufacturers
func (api *ManufacturerAPI) AddManufacturer(c *gin.Context) {
	var payload manufacturermapper.ManufacturerInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	saved, err := api.service.AddManufacturer(c.Request.Context(), manufacturermapper.ToDomainManufacturer(0, payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, manufacturermapper.FromDomainManufacturer(saved))
}

// Get /v1/manufacturers
func (api *ManufacturerAPI) ListManufacturers(c *gin.Context) {
	list, err := api.service.ListManufacturers(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDomainManufacturers(list))
}

// Get /v1/manufacturers/:id
func (api *ManufacturerAPI) GetManufacturer(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	m, err := api.service.GetManufacturer(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDomainManufacturer(m))
}

// Put /v1/manufacturers/:id
func (api *ManufacturerAPI) UpdateManufacturer(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	var payload manufacturermapper.ManufacturerInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	updated, err := api.service.UpdateManufacturer(c.Request.Context(), manufacturermapper.ToDomainManufacturer(id, payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDomainManufacturer(updated))
}

// Delete /v1/manufacturers/:id
// Removes the manufacturer and cascades to its souvenirs.
func (api *ManufacturerAPI) DeleteManufacturer(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	report, err := api.deleteManufacturer(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDeletionReport(report))
}

func (api *ManufacturerAPI) deleteManufacturer(ctx context.Context, id int64) (*ports.DeletionReport, error) {
	if api.workflows != nil {
		return api.workflows.DeleteManufacturer(ctx, id)
	}
	return api.service.DeleteManufacturer(ctx, id)
}

// Get /v1/manufacturers/:id/souvenirs
func (api *ManufacturerAPI) ListManufacturerSouvenirs(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	if _, err := api.service.GetManufacturer(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	list, err := api.souvenirs.SouvenirsByManufacturer(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromDomainSouvenirs(list))
}

// Get /v1/reports/manufacturers/by-max-price?price=
func (api *ManufacturerAPI) ManufacturersByMaxPrice(c *gin.Context) {
	var price float64
	if err := params.Query(c, "price", &price); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	list, err := api.service.ManufacturersByMaxPrice(c.Request.Context(), price)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDomainManufacturers(list))
}

// Get /v1/reports/manufacturers/with-souvenirs
func (api *ManufacturerAPI) ManufacturersWithSouvenirs(c *gin.Context) {
	catalogs, err := api.service.ManufacturersWithSouvenirs(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromCatalogs(catalogs))
}

// Get /v1/reports/manufacturers/by-souvenir?name=&year=
func (api *ManufacturerAPI) ManufacturersOfSouvenirByYear(c *gin.Context) {
	var (
		name string
		year int
	)
	if err := params.Query(c, "name", &name); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	if err := params.Query(c, "year", &year); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	list, err := api.service.ManufacturersOfSouvenirByYear(c.Request.Context(), name, year)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturermapper.FromDomainManufacturers(list))
}

// Get /v1/reports/countries
func (api *ManufacturerAPI) Countries(c *gin.Context) {
	countries, err := api.service.Countries(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (api *ManufacturerAPI) pathID(c *gin.Context) (int64, bool) {
	id, err := params.PathID(c, "id")
	if err != nil {
		api.responder.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

// ProblemFor maps manufacturer service errors to problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	var invalid *validation.Error
	switch {
	case errors.Is(err, application.ErrInvalidInput) && errors.As(err, &invalid):
		return apierrors.NewValidationProblem(invalid.Messages), true
	case errors.Is(err, application.ErrNotFound):
		return apierrors.Problem(apierrors.KindNotFound, application.ErrNotFound.Error()), true
	case errors.Is(err, application.ErrAlreadyExists):
		return apierrors.Problem(apierrors.KindConflict, application.ErrAlreadyExists.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
