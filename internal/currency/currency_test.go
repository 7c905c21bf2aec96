package currency_test

import (
	"testing"

	"github.com/bonangpanjinur/desawisata/internal/currency"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 0", currency.FormatIDR(0))
	assert.Equal(t, "Rp 500", currency.FormatIDR(500))
	assert.Equal(t, "Rp 10.000", currency.FormatIDR(10000))
	assert.Equal(t, "Rp 1.250.000", currency.FormatIDR(1250000))
}
