package currency_test

import (
	"testing"

	"payroll-pro/internal/shared/currency"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 2.478.000", currency.FormatIDR(2478000))
	assert.Equal(t, "Rp 0", currency.FormatIDR(0))
	assert.Equal(t, "-Rp 100.000", currency.FormatIDR(-100000))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "45jt", currency.FormatShort(45000000))
	assert.Equal(t, "48jt", currency.FormatShort(47500000))
}
