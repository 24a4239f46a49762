package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	souvenirmapper "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/http/mapper"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/application"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	apierrors "github.com/Apurer/souvenir-registry/internal/shared/errors"
	"github.com/Apurer/souvenir-registry/internal/shared/params"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

// SouvenirAPI wires HTTP transport with the souvenir service.
type SouvenirAPI struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

func NewSouvenirAPI(service ports.Service, responder *apierrors.ChainedResponder) *SouvenirAPI {
	if responder == nil {
		responder = apierrors.NewChainedResponder("", ProblemFor)
	}
	return &SouvenirAPI{service: service, responder: responder}
}

// Register mounts the souvenir routes on r.
func (api *SouvenirAPI) Register(r gin.IRouter) {
	r.POST("/souvenirs", api.AddSouvenir)
	r.GET("/souvenirs", api.ListSouvenirs)
	r.GET("/souvenirs/:id", api.GetSouvenir)
	r.PUT("/souvenirs/:id", api.UpdateSouvenir)
	r.DELETE("/souvenirs/:id", api.DeleteSouvenir)

	r.GET("/reports/souvenirs/by-country", api.SouvenirsByCountry)
	r.GET("/reports/souvenirs/by-year", api.SouvenirsByYear)
}

// Post /v1/souvenirs
func (api *SouvenirAPI) AddSouvenir(c *gin.Context) {
	var payload souvenirmapper.SouvenirInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	saved, err := api.service.AddSouvenir(c.Request.Context(), souvenirmapper.ToDomainSouvenir(0, payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, souvenirmapper.FromDomainSouvenir(saved))
}

// Get /v1/souvenirs
func (api *SouvenirAPI) ListSouvenirs(c *gin.Context) {
	list, err := api.service.ListSouvenirs(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromDomainSouvenirs(list))
}

// Get /v1/souvenirs/:id
func (api *SouvenirAPI) GetSouvenir(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	souvenir, err := api.service.GetSouvenir(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromDomainSouvenir(souvenir))
}

// Put /v1/souvenirs/:id
func (api *SouvenirAPI) UpdateSouvenir(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	var payload souvenirmapper.SouvenirInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	updated, err := api.service.UpdateSouvenir(c.Request.Context(), souvenirmapper.ToDomainSouvenir(id, payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromDomainSouvenir(updated))
}

// Delete /v1/souvenirs/:id
func (api *SouvenirAPI) DeleteSouvenir(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	if err := api.service.DeleteSouvenir(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/reports/souvenirs/by-country?country=
func (api *SouvenirAPI) SouvenirsByCountry(c *gin.Context) {
	var country string
	if err := params.Query(c, "country", &country); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	list, err := api.service.SouvenirsByCountry(c.Request.Context(), country)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromDomainSouvenirs(list))
}

// Get /v1/reports/souvenirs/by-year
func (api *SouvenirAPI) SouvenirsByYear(c *gin.Context) {
	groups, err := api.service.SouvenirsByYear(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, souvenirmapper.FromYearGroups(groups))
}

func (api *SouvenirAPI) pathID(c *gin.Context) (int64, bool) {
	id, err := params.PathID(c, "id")
	if err != nil {
		api.responder.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

// ProblemFor maps souvenir service errors to problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	var invalid *validation.Error
	switch {
	case errors.Is(err, application.ErrInvalidInput) && errors.As(err, &invalid):
		return apierrors.NewValidationProblem(invalid.Messages), true
	case errors.Is(err, application.ErrUnknownManufacturer):
		return apierrors.Problem(apierrors.KindReferential, application.ErrUnknownManufacturer.Error()), true
	case errors.Is(err, application.ErrNotFound):
		return apierrors.Problem(apierrors.KindNotFound, application.ErrNotFound.Error()), true
	case errors.Is(err, application.ErrAlreadyExists):
		return apierrors.Problem(apierrors.KindConflict, application.ErrAlreadyExists.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
