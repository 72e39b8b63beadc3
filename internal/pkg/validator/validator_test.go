package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortRequest struct {
	Order *string `validate:"omitempty,sortorder"`
	Limit int     `validate:"gt=0"`
}

func TestStruct_SortOrder(t *testing.T) {
	desc, upper, bad := "desc", "ASC", "sideways"

	assert.NoError(t, Struct(sortRequest{Order: &desc, Limit: 1}))
	assert.NoError(t, Struct(sortRequest{Order: &upper, Limit: 1}))
	assert.NoError(t, Struct(sortRequest{Limit: 1}))
	assert.Error(t, Struct(sortRequest{Order: &bad, Limit: 1}))
}

func TestStruct_Limit(t *testing.T) {
	assert.Error(t, Struct(sortRequest{Limit: 0}))
	assert.Same(t, Get(), validate)
}
