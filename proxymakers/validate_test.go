package proxymakers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceQueryValidate(t *testing.T) {
	tests := []struct {
		name      string
		query     PriceQuery
		wantField string
	}{
		{name: "valid", query: PriceQuery{Service: ServiceIPv4, Quantity: 1, Period: 1}},
		{name: "valid renew", query: PriceQuery{Service: ServiceIPv6, Quantity: 3, Period: 90, Intent: IntentRenew}},
		{name: "unknown service", query: PriceQuery{Service: "socks5", Quantity: 1, Period: 1}, wantField: "Service"},
		{name: "zero quantity", query: PriceQuery{Service: ServiceIPv4, Quantity: 0, Period: 1}, wantField: "Quantity"},
		{name: "period too long", query: PriceQuery{Service: ServiceIPv4, Quantity: 1, Period: 91}, wantField: "Period"},
		{name: "unknown intent", query: PriceQuery{Service: ServiceIPv4, Quantity: 1, Period: 5, Intent: "upgrade"}, wantField: "Intent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)
		})
	}
}

func TestOrderRequestValidate(t *testing.T) {
	valid := OrderRequest{Service: ServiceIPv4, Geo: GeoDE, Quantity: 2, Period: 30, Schedule: ScheduleLeastConnection}
	assert.NoError(t, valid.Validate())

	invalid := OrderRequest{Service: ServiceIPv4, Geo: "FR", Quantity: 2, Period: 0, Schedule: "fastest"}
	err := invalid.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"Geo", "Period", "Schedule"}, fields)
	assert.Contains(t, err.Error(), "Geo")
}

func TestOrderSettingsValidate(t *testing.T) {
	assert.NoError(t, OrderSettings{}.Validate())

	good := ScheduleRandomChoice
	assert.NoError(t, OrderSettings{Schedule: &good}.Validate())

	bad := Schedule("sticky")
	err := OrderSettings{Schedule: &bad}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sticky", verr.Fields[0].Value)
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, ValidatePeriod(MinPeriod))
	assert.NoError(t, ValidatePeriod(MaxPeriod))

	err := ValidatePeriod(120)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Period", verr.Fields[0].Field)
	assert.Equal(t, "max=90", verr.Fields[0].Rule)
}
