package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceUnmarshal(t *testing.T) {
	var c Choice
	require.NoError(t, json.Unmarshal([]byte(`"IGBT"`), &c))
	assert.False(t, c.IsCustom())
	assert.Equal(t, "IGBT", c.Resolve())

	require.NoError(t, json.Unmarshal([]byte(`{"custom":"  Line 7 "}`), &c))
	assert.True(t, c.IsCustom())
	assert.Equal(t, "Line 7", c.Resolve())

	require.NoError(t, json.Unmarshal([]byte(`{"known":"Loom"}`), &c))
	assert.Equal(t, Known("Loom"), c)

	assert.Error(t, json.Unmarshal([]byte(`{"other":"x"}`), &c))
}

func TestChoiceValidate(t *testing.T) {
	assert.NoError(t, Known("CVS").Validate(Stations))
	assert.Error(t, Known("Line 7").Validate(Stations))
	assert.NoError(t, Custom("Line 7").Validate(Stations))
	assert.Error(t, Custom("   ").Validate(Stations))
	assert.Error(t, Choice{}.Validate(Stations))
}

func TestChoiceOf(t *testing.T) {
	assert.Equal(t, Known("Crimp Issue"), ChoiceOf("Crimp Issue", DefectTypes))
	assert.True(t, ChoiceOf("Burr", DefectTypes).IsCustom())
}

func TestChoiceMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A Choice `json:"a"`
		B Choice `json:"b"`
	}{Known("CVS"), Custom("Line 7")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"CVS","b":{"custom":"Line 7"}}`, string(b))
}
