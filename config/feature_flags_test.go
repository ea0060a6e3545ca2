package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFlags_Defaults(t *testing.T) {
	ff := LoadFeatureFlags()

	assert.True(t, ff.IsEnabled(FeatureRecsCache, nil))
	assert.True(t, ff.IsEnabled(FeatureSurveyRetake, nil))
	assert.False(t, ff.IsEnabled(FeatureExperimentalGoalKeywords, nil))
	assert.False(t, ff.IsEnabled("does.not.exist", nil))
}

func TestFeatureFlags_EnvOverride(t *testing.T) {
	t.Setenv("FEATURE_RECS_CACHE", "false")
	t.Setenv("FEATURE_EXPERIMENTAL_ANALYTICS", "true")

	ff := LoadFeatureFlags()

	assert.False(t, ff.IsEnabled(FeatureRecsCache, nil))
	assert.True(t, ff.IsEnabled(FeatureExperimentalAnalytics, nil))
}

func TestFeatureFlags_StartupGates(t *testing.T) {
	// The API wires the ranking cache and the new-mentor boost off these
	// flags at startup, evaluated without a user context.
	ff := LoadFeatureFlags()
	assert.True(t, ff.IsEnabled(FeatureRecsCache, nil))
	assert.True(t, ff.IsEnabled(FeatureRecsNewMentorBadge, nil))

	t.Setenv("FEATURE_RECS_NEW_MENTOR_BADGE", "false")
	ff = LoadFeatureFlags()
	assert.False(t, ff.IsEnabled(FeatureRecsNewMentorBadge, nil))
}

func TestFeatureFlags_RolloutIsConsistentPerUser(t *testing.T) {
	ff := LoadFeatureFlags()
	require.NoError(t, ff.SetRolloutPercent(FeatureRecsNewMentorBadge, 50))

	ctx := &FeatureContext{UserID: "11111111-1111-4111-8111-111111111111"}

	first := ff.IsEnabled(FeatureRecsNewMentorBadge, ctx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ff.IsEnabled(FeatureRecsNewMentorBadge, ctx),
			"same user must stay in the same bucket")
	}
}

func TestFeatureFlags_UserOverrideWins(t *testing.T) {
	ff := LoadFeatureFlags()
	ctx := &FeatureContext{UserID: "22222222-2222-4222-8222-222222222222"}

	ff.SetUserOverride(ctx.UserID, FeatureExperimentalGoalKeywords, true)
	assert.True(t, ff.IsEnabled(FeatureExperimentalGoalKeywords, ctx))

	ff.ClearUserOverrides(ctx.UserID)
	assert.False(t, ff.IsEnabled(FeatureExperimentalGoalKeywords, ctx))
}

func TestFeatureFlags_AdminGetsEverything(t *testing.T) {
	ff := LoadFeatureFlags()
	ctx := &FeatureContext{UserID: "33333333-3333-4333-8333-333333333333", IsAdmin: true}

	assert.True(t, ff.IsEnabled(FeatureExperimentalAnalytics, ctx))
}

func TestMatchingConfig_RankerConfig(t *testing.T) {
	cfg := loadMatchingConfig()

	rc := cfg.RankerConfig()
	require.NoError(t, rc.Validate())
	assert.Equal(t, 0.35, rc.Weights.Fields)
	assert.Equal(t, 0.3, rc.MinScore)
	assert.Equal(t, 5, rc.BoostMenteeCap)
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	t.Setenv("MATCH_WEIGHT_FIELDS", "0.9") // weights no longer sum to 1

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matching config")
}
