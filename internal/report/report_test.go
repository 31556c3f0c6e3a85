package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/profile"
)

func TestWriteParams(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteParams(&buf, config.DefaultParams(), "gpx"))
	assert.Equal(t, "units=US, running, weight=66 kg, filtering=250 m, format=gpx\n", buf.String())

	p := config.DefaultParams()
	p.Metric, p.Running = true, false
	buf.Reset()
	require.NoError(t, WriteParams(&buf, p, "text"))
	assert.Equal(t, "units=metric, walking, weight=66 kg, filtering=250 m, format=text\n", buf.String())
}

func TestWriteText(t *testing.T) {
	st := models.Stats{HorizontalDistance: 10000, SlopeDistance: 10050, Gain: 500, Kcals: 812.4}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, st, true))
	assert.Equal(t, "horizontal distance =  10.00 km\nslope distance =  10.05 km\ngain =   500 m\ncost =   812 kcals\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteText(&buf, st, false))
	assert.Equal(t, "horizontal distance =   6.21 mi\nslope distance =   6.24 mi\ngain =  1640 ft\ncost =   812 kcals\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	res := models.KcalsResult{Stats: models.Stats{Gain: 12.5, OrigN: 3}, Warnings: []string{"w"}}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "warnings")
}

func TestWriteProfileCSV(t *testing.T) {
	samples := []profile.PathSample{{H: 0, V: 0}, {H: 10, V: 1.5}, {H: 25.126, V: 1}}
	var buf bytes.Buffer
	require.NoError(t, WriteProfileCSV(&buf, samples))
	assert.Equal(t, "h,v,dh,dv\n10.00,1.50,10.00,1.50\n25.13,1.00,15.13,-0.50\n", buf.String())
}
