package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	s, err := Settings([]byte(`{"success":true,"data":{"setting_attribute":{"maxreward":{
		"rm_points":"2","pp_points":10,"rp_points":"5.5","cp_points":20,"cr_points":1,
		"max_level":"30","deductable_points":0.5}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "2", s.RMPoints.String())
	assert.Equal(t, "10", s.PPPoints.String())
	assert.Equal(t, "5.5", s.RPPoints.String())
	assert.Equal(t, 30, s.MaxLevel)
	assert.Equal(t, "0.5", s.DeductablePoints.String())
	assert.Equal(t, "2", s.PointsPerCurrencyUnit().String())
}

func TestSettingsEncodedAsString(t *testing.T) {
	s, err := Settings([]byte(`{"data":{"setting_attribute":"{\"maxreward\":{\"rm_points\":4}}"}}`))
	require.NoError(t, err)
	assert.Equal(t, "4", s.PointsPerCurrencyUnit().String())
}

func TestSettingsMissing(t *testing.T) {
	s, err := Settings([]byte(`{"data":{}}`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, "1", s.PointsPerCurrencyUnit().String())

	s, err = Settings([]byte(`{"setting_attribute":{"maxreward":{"rm_points":"abc"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "1", s.PointsPerCurrencyUnit().String())
}
