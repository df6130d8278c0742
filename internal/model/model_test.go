package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightSummaryAlertsPerVisit(t *testing.T) {
	t.Run("zero visits yields zero", func(t *testing.T) {
		n := NightSummary{Night: 20260115, NVisits: 0, NAlerts: 42}
		assert.Equal(t, 0.0, n.AlertsPerVisit())
	})

	t.Run("ratio of alerts to visits", func(t *testing.T) {
		n := NightSummary{Night: 20260115, NVisits: 8, NAlerts: 20}
		assert.Equal(t, 2.5, n.AlertsPerVisit())
	})
}

func TestRowPreservesBigIdentifiers(t *testing.T) {
	// 2^53+1 is not representable as a float64; it must survive decoding.
	const id = int64(9007199254740993)

	dec := json.NewDecoder(strings.NewReader(`{"diaSourceId": 9007199254740993, "diaSource.ra": 158.06}`))
	dec.UseNumber()
	var row Row
	require.NoError(t, dec.Decode(&row))

	got, err := row.Int64("diaSourceId")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "9007199254740993", row.String("diaSourceId"))

	ra, err := row.Float64("diaSource.ra")
	require.NoError(t, err)
	assert.InDelta(t, 158.06, ra, 1e-9)
}

func TestRowErrors(t *testing.T) {
	row := Row{"name": "ZTF-like", "nil": nil}

	_, err := row.Int64("missing")
	assert.Error(t, err)
	_, err = row.Int64("name")
	assert.Error(t, err)
	assert.Equal(t, "", row.String("nil"))
	assert.Equal(t, "", row.String("missing"))
}

func TestAlertCutouts(t *testing.T) {
	a := Alert{
		CutoutScience:  []byte{0x1},
		CutoutTemplate: []byte{0x2, 0x3},
	}
	got := a.Cutouts()
	want := map[string][]byte{
		"science":  {0x1},
		"template": {0x2, 0x3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cutouts mismatch (-want +got):\n%s", diff)
	}
}

func TestDiaObjectBandStats(t *testing.T) {
	mean := 123.4
	ndata := 7
	o := DiaObject{
		GPsfFluxMean:  &mean,
		GPsfFluxNdata: &ndata,
		RPsfFluxNdata: &ndata,
	}

	stats := o.BandStats()
	require.Len(t, stats, 2)
	assert.Equal(t, "g", stats[0].Band)
	assert.Equal(t, &mean, stats[0].FluxMean)
	assert.Equal(t, "r", stats[1].Band)
	assert.Nil(t, stats[1].FluxMean)
}
