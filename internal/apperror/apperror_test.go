package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestFrom_WrappedError(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NotFound(MsgPolicyNotFound))

	got := From(err)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, MsgPolicyNotFound, got.MessageID)
}

func TestFrom_UnclassifiedIsInternal(t *testing.T) {
	cause := errors.New("connection refused")

	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, MsgInternal, got.MessageID)
	assert.ErrorIs(t, got, cause)
}

func TestError_IncludesCause(t *testing.T) {
	err := Internal(MsgProductsFetch, errors.New("pq: relation missing"))
	assert.Equal(t, "products_fetch_failed: pq: relation missing", err.Error())
}
