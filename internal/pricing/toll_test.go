package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quoting/internal/domain"
)

func TestResolveToll_NoCrossingNoCharge(t *testing.T) {
	facts := testFacts()
	facts.RouteTollID = "bay-bridge" // ignored without a flagged crossing

	got, err := resolveToll(testConfig(), facts)
	require.NoError(t, err)
	require.True(t, got.client.IsZero())
	require.True(t, got.driver.IsZero())
}

func TestResolveToll_MatchedByID(t *testing.T) {
	facts := testFacts()
	facts.CrossesTolledRoute = true
	facts.RouteTollID = "bay-bridge"

	got, err := resolveToll(testConfig(), facts)
	require.NoError(t, err)
	require.True(t, got.client.Equal(dec("8.00")))
	require.True(t, got.driver.IsZero(), "no pass-through unless the configuration enables it")
}

func TestResolveToll_SingleTollServesAsDefault(t *testing.T) {
	facts := testFacts()
	facts.CrossesTolledRoute = true

	got, err := resolveToll(testConfig(), facts)
	require.NoError(t, err)
	require.True(t, got.client.Equal(dec("8.00")))
}

func TestResolveToll_AmbiguousWithoutID(t *testing.T) {
	cfg := testConfig()
	cfg.BridgeTollSettings.Tolls = append(cfg.BridgeTollSettings.Tolls,
		domain.BridgeToll{TollID: "richmond", Amount: dec("6.00")})

	facts := testFacts()
	facts.CrossesTolledRoute = true

	_, err := resolveToll(cfg, facts)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestResolveToll_CrossingWithoutConfiguredTolls(t *testing.T) {
	cfg := testConfig()
	cfg.BridgeTollSettings.Tolls = nil

	facts := testFacts()
	facts.CrossesTolledRoute = true

	_, err := resolveToll(cfg, facts)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "bridgeTollSettings.tolls", cfgErr.Field)
}

func TestResolveToll_PassThroughCreditsDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DriverPaySettings.TollPassThrough = true

	facts := testFacts()
	facts.CrossesTolledRoute = true
	facts.RouteTollID = "bay-bridge"

	got, err := resolveToll(cfg, facts)
	require.NoError(t, err)
	require.True(t, got.client.Equal(dec("8.00")))
	require.True(t, got.driver.Equal(dec("8.00")))
}

func TestCompute_TollNeverDiscounted(t *testing.T) {
	// A 100% discount wipes the base fee but the toll still bills.
	cfg := testConfig()
	cfg.DailyDriveDiscounts = []domain.DriveDiscountRule{
		{MinDailyDrives: 1, DiscountFraction: decPtr("1")},
	}

	facts := testFacts()
	facts.CrossesTolledRoute = true
	facts.RouteTollID = "bay-bridge"

	quote, err := NewCalculatorWithClock(fixedClock()).Compute(cfg, facts)
	require.NoError(t, err)

	require.True(t, quote.DiscountAppliedClient.Equal(quote.BaseClientFee))
	require.True(t, quote.TotalClientFee.Equal(dec("8.00")), "total %s", quote.TotalClientFee)
}
