package cdsco_test

import (
	"errors"
	"testing"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := cdsco.Errorf(cdsco.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, cdsco.ENOTFOUND, cdsco.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", cdsco.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, cdsco.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cdsco.EINTERNAL, cdsco.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, cdsco.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", cdsco.ErrorMessage(errors.New("boom")))
}
