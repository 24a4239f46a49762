package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func respond(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/things/7", nil)
	responder.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_FirstMatchingMapperWins(t *testing.T) {
	responder := NewChainedResponder("",
		nil,
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errGone) {
				return Problem(KindNotFound, "thing 7"), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return Problem(KindConflict, "never"), true },
	)

	rec, problem := respond(t, responder, fmt.Errorf("lookup: %w", errGone))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "Resource Not Found", problem.Title)
	assert.Equal(t, "thing 7", problem.Detail)
	assert.Equal(t, "/v1/things/7", problem.Instance)
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	responder := NewChainedResponder("https://registry.example")

	rec, problem := respond(t, responder, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://registry.example"+TypeInternal, problem.Type)
	assert.Equal(t, "disk on fire", problem.Detail)
}

func TestChainedResponder_UsesWrappedProblem(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Problem(KindReferential, "no manufacturer 9"))

	rec, problem := respond(t, NewChainedResponder(""), wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, TypeUnprocessable, problem.Type)
}

func TestChainedResponder_NilErrorWritesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	NewChainedResponder("").RespondError(c, nil)

	assert.Empty(t, rec.Body.Bytes())
}

func TestNewValidationProblem_ListsMessagesInOrder(t *testing.T) {
	messages := []string{"Name cannot be empty.", "Country cannot be empty."}

	problem := NewValidationProblem(messages)

	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "Name cannot be empty. Country cannot be empty.", problem.Detail)
	assert.Equal(t, messages, problem.Extensions["errors"])
}

func TestProblem_UnknownKindIsInternal(t *testing.T) {
	problem := Problem(Kind(99), "odd")

	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, "Internal Server Error: odd", problem.Error())
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := Problem(KindConflict, "dup").WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.NotContains(t, base.Extensions, "b")
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, derived.Extensions)
}
