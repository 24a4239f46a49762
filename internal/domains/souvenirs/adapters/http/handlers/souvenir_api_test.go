package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	manufacturermemory "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/memory"
	manufacturersnapshot "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/persistence/snapshot"
	manufacturerdomain "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	souvenirmemory "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/memory"
	souvenirsnapshot "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/persistence/snapshot"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/application"
	blobmemory "github.com/Apurer/souvenir-registry/internal/platform/blob/memory"
)

func newRouter(t *testing.T, countries ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	blobs := blobmemory.New()
	manufacturers := manufacturermemory.NewRepository(ctx, manufacturersnapshot.NewStore(blobs, "manufacturers.json"))
	souvenirs := souvenirmemory.NewRepository(ctx, souvenirsnapshot.NewStore(blobs, "souvenirs.json"))
	for i, country := range countries {
		_, err := manufacturers.Add(ctx, manufacturerdomain.NewManufacturer("Maker "+string(rune('A'+i)), country))
		require.NoError(t, err)
	}

	router := gin.New()
	NewSouvenirAPI(application.NewService(souvenirs, manufacturers), nil).Register(router.Group("/v1"))
	return router
}

func request(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddSouvenir_Created(t *testing.T) {
	router := newRouter(t, "USA")

	w := request(t, router, http.MethodPost, "/v1/souvenirs", `{"name":"Mug","manufacturerId":1,"productionDate":"2020-03-01","price":9.5}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Mug","manufacturerId":1,"productionDate":"2020-03-01","price":9.5}`, w.Body.String())
}

func TestAddSouvenir_Problems(t *testing.T) {
	router := newRouter(t, "USA")
	body := `{"name":"Mug","manufacturerId":1,"productionDate":"2020-03-01","price":9.5}`
	require.Equal(t, http.StatusCreated, request(t, router, http.MethodPost, "/v1/souvenirs", body).Code)

	assert.Equal(t, http.StatusConflict, request(t, router, http.MethodPost, "/v1/souvenirs", body).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		request(t, router, http.MethodPost, "/v1/souvenirs", `{"name":"Cup","manufacturerId":5,"productionDate":"2020-03-01","price":1}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		request(t, router, http.MethodPost, "/v1/souvenirs", `{"name":"Cup","manufacturerId":1,"productionDate":"03/01/2020","price":1}`).Code)

	w := request(t, router, http.MethodPost, "/v1/souvenirs", `{"name":"Cup","manufacturerId":1,"price":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var problem struct {
		Extensions struct {
			Errors []string `json:"errors"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, []string{"Production date must be in the past.", "Price cannot be negative or zero."}, problem.Extensions.Errors)
}

func TestSouvenirLifecycle(t *testing.T) {
	router := newRouter(t, "USA", "UK")
	require.Equal(t, http.StatusCreated,
		request(t, router, http.MethodPost, "/v1/souvenirs", `{"name":"Mug","manufacturerId":1,"productionDate":"2020-03-01","price":9.5}`).Code)

	w := request(t, router, http.MethodPut, "/v1/souvenirs/1", `{"name":"Mug","manufacturerId":2,"productionDate":"2021-03-01","price":11}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Mug","manufacturerId":2,"productionDate":"2021-03-01","price":11}`, w.Body.String())

	w = request(t, router, http.MethodGet, "/v1/souvenirs/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNoContent, request(t, router, http.MethodDelete, "/v1/souvenirs/1", "").Code)
	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodDelete, "/v1/souvenirs/1", "").Code)
	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodGet, "/v1/souvenirs/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, request(t, router, http.MethodGet, "/v1/souvenirs/-1", "").Code)

	w = request(t, router, http.MethodGet, "/v1/souvenirs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSouvenirReports(t *testing.T) {
	router := newRouter(t, "USA", "UK")
	for _, body := range []string{
		`{"name":"Mug","manufacturerId":1,"productionDate":"2020-03-01","price":9.5}`,
		`{"name":"Pen","manufacturerId":2,"productionDate":"2020-05-01","price":2}`,
		`{"name":"Cap","manufacturerId":1,"productionDate":"2022-05-01","price":7}`,
	} {
		require.Equal(t, http.StatusCreated, request(t, router, http.MethodPost, "/v1/souvenirs", body).Code)
	}

	w := request(t, router, http.MethodGet, "/v1/reports/souvenirs/by-country?country=USA", "")
	require.Equal(t, http.StatusOK, w.Code)
	var byCountry []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byCountry))
	require.Len(t, byCountry, 2)
	assert.Equal(t, "Mug", byCountry[0].Name)
	assert.Equal(t, "Cap", byCountry[1].Name)

	w = request(t, router, http.MethodGet, "/v1/reports/souvenirs/by-year", "")
	require.Equal(t, http.StatusOK, w.Code)
	var byYear []struct {
		Year      int               `json:"year"`
		Souvenirs []json.RawMessage `json:"souvenirs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byYear))
	require.Len(t, byYear, 2)
	assert.Equal(t, 2020, byYear[0].Year)
	assert.Len(t, byYear[0].Souvenirs, 2)
	assert.Equal(t, 2022, byYear[1].Year)

	assert.Equal(t, http.StatusBadRequest, request(t, router, http.MethodGet, "/v1/reports/souvenirs/by-country", "").Code)
}
