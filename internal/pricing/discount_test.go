package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"quoting/internal/domain"
)

func TestResolveDiscount_HighestSatisfiedRuleWins(t *testing.T) {
	cfg := testConfig()
	cfg.DailyDriveDiscounts = []domain.DriveDiscountRule{
		{MinDailyDrives: 3, DiscountFraction: decPtr("0.05")},
		{MinDailyDrives: 5, DiscountFraction: decPtr("0.10")},
		{MinDailyDrives: 10, DiscountFraction: decPtr("0.15")},
	}

	cases := []struct {
		drives int
		want   string
	}{
		{1, "0"},
		{2, "0"},
		{3, "5.00"},
		{4, "5.00"},
		{5, "10.00"},
		{9, "10.00"},
		{10, "15.00"},
		{40, "15.00"},
	}

	base := dec("100.00")
	for _, tc := range cases {
		facts := testFacts()
		facts.DailyDriveCountForDriver = tc.drives

		got, err := resolveDiscount(cfg, facts, base)
		require.NoError(t, err)
		require.True(t, got.amount.Equal(dec(tc.want)), "drives %d: got %s want %s", tc.drives, got.amount, tc.want)
	}
}

func TestResolveDiscount_FixedAmountRule(t *testing.T) {
	cfg := testConfig()
	cfg.DailyDriveDiscounts = []domain.DriveDiscountRule{
		{MinDailyDrives: 4, DiscountAmount: decPtr("7.50")},
	}

	facts := testFacts()
	facts.DailyDriveCountForDriver = 4

	got, err := resolveDiscount(cfg, facts, dec("50.00"))
	require.NoError(t, err)
	require.True(t, got.amount.Equal(dec("7.50")))
	require.False(t, got.capped)
}

func TestResolveDiscount_CappedAtBaseFee(t *testing.T) {
	cfg := testConfig()
	cfg.DailyDriveDiscounts = []domain.DriveDiscountRule{
		{MinDailyDrives: 1, DiscountAmount: decPtr("80.00")},
	}

	got, err := resolveDiscount(cfg, testFacts(), dec("50.00"))
	require.NoError(t, err)
	require.True(t, got.amount.Equal(dec("50.00")), "discount must not exceed the base fee")
	require.True(t, got.capped)
}

func TestResolveDiscount_OverrideWinsOverRules(t *testing.T) {
	cfg := testConfig()
	cfg.CustomSettings = domain.CustomSettings{
		"discountOverride": json.RawMessage(`{"fraction":"0.5","reason":"pilot client"}`),
	}

	// Drive count satisfies the 10% rule, but the override replaces it.
	facts := testFacts()
	facts.DailyDriveCountForDriver = 6

	got, err := resolveDiscount(cfg, facts, dec("100.00"))
	require.NoError(t, err)
	require.True(t, got.amount.Equal(dec("50.00")), "got %s", got.amount)
}

func TestResolveDiscount_OverrideValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"fraction":`},
		{"both kinds set", `{"fraction":"0.1","amount":"5.00"}`},
		{"neither kind set", `{"reason":"nothing here"}`},
		{"fraction above one", `{"fraction":"1.5"}`},
		{"negative amount", `{"amount":"-4"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CustomSettings = domain.CustomSettings{
				"discountOverride": json.RawMessage(tc.raw),
			}

			_, err := resolveDiscount(cfg, testFacts(), dec("100.00"))

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Contains(t, cfgErr.Field, "customSettings.discountOverride")
		})
	}
}

func TestResolveDiscount_UnknownCustomKeysAreIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.CustomSettings = domain.CustomSettings{
		"invoiceGrouping": json.RawMessage(`"weekly"`),
	}

	got, err := resolveDiscount(cfg, testFacts(), dec("100.00"))
	require.NoError(t, err)
	require.True(t, got.amount.IsZero())
}
