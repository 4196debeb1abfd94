package entity

import (
	"testing"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestFeeForPixPrefersTerminalVariant(t *testing.T) {
	table := &RateTable{
		PixChannels: []PixChannel{
			{Label: "Pix banco", Variant: PixVariantBanco, Rate: 0},
			{Label: "Pix maquininha", Variant: PixVariantMaquina, Rate: 0.99},
		},
	}

	assert.Equal(t, 0.99, table.FeeFor(enum.PaymentMethodPix, 1))
}

func TestFeeForPixFallsBackToFirstChannel(t *testing.T) {
	table := &RateTable{
		PixChannels: []PixChannel{
			{Label: "Pix banco", Variant: PixVariantBanco, Rate: 0.50},
		},
	}

	assert.Equal(t, 0.50, table.FeeFor(enum.PaymentMethodPix, 1))
}

func TestFeeForCardRates(t *testing.T) {
	table := &RateTable{
		CardChannels: []CardChannel{{
			Label:            "Maquininha principal",
			DebitRate:        1.39,
			CreditSightRate:  3.15,
			InstallmentRates: InstallmentRates{3.15, 4.20, 5.10},
		}},
	}

	assert.Equal(t, 1.39, table.FeeFor(enum.PaymentMethodDebito, 1))
	// Installments below 2 use the sight rate
	assert.Equal(t, 3.15, table.FeeFor(enum.PaymentMethodCredito, 0))
	assert.Equal(t, 3.15, table.FeeFor(enum.PaymentMethodCredito, 1))
	assert.Equal(t, 4.20, table.FeeFor(enum.PaymentMethodCredito, 2))
	assert.Equal(t, 5.10, table.FeeFor(enum.PaymentMethodCredito, 3))
}

func TestFeeForUnconfiguredInstallmentCount(t *testing.T) {
	table := &RateTable{
		CardChannels: []CardChannel{{
			Label:            "Maquininha principal",
			InstallmentRates: InstallmentRates{3.15, 4.20},
		}},
	}

	assert.Equal(t, 0.0, table.FeeFor(enum.PaymentMethodCredito, 5))
}

func TestFeeForEmptyTableIsZero(t *testing.T) {
	table := &RateTable{}

	for _, method := range []enum.PaymentMethod{
		enum.PaymentMethodPix,
		enum.PaymentMethodDebito,
		enum.PaymentMethodCredito,
	} {
		assert.Equal(t, 0.0, table.FeeFor(method, 1), method.String())
	}
}

func TestFeeForFeelessMethods(t *testing.T) {
	table := &RateTable{
		CardChannels: []CardChannel{{Label: "Maquininha", DebitRate: 1.39}},
		PixChannels:  []PixChannel{{Label: "Pix", Rate: 0.99}},
	}

	assert.Equal(t, 0.0, table.FeeFor(enum.PaymentMethodDinheiro, 1))
	assert.Equal(t, 0.0, table.FeeFor(enum.PaymentMethodCrediario, 1))
	assert.Equal(t, 0.0, table.FeeFor(enum.PaymentMethodOutros, 1))
}

func TestValidRate(t *testing.T) {
	assert.True(t, ValidRate(0))
	assert.True(t, ValidRate(3.15))
	assert.True(t, ValidRate(100))
	assert.False(t, ValidRate(-0.01))
	assert.False(t, ValidRate(100.01))
}
