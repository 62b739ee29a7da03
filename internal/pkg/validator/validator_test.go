package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"notblank,max=10"`
	Capacity int    `validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "A-101", Capacity: 4}))

	errs := Validate(sample{Name: "   ", Capacity: 0})
	assert.Equal(t, "notblank", errs["Name"])
	assert.Equal(t, "gt", errs["Capacity"])

	errs = Validate(sample{Name: "much too long a name", Capacity: 1})
	assert.Equal(t, "max", errs["Name"])
}
