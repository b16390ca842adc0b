package logit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantal/logitrace"
)

func TestCorrespondenceRoundTrip(t *testing.T) {
	game := compileBimatrix(t,
		[][]float64{{1, 0}, {0, 1}},
		[][]float64{{1, 0}, {0, 1}})
	support := logitrace.FullSupport(game)

	a := support.Centroid()
	b := support.NewProfile(0)
	for i, v := range []float64{0.25, 0.75, 1.0 / 3.0, 2.0 / 3.0} {
		b.SetAt(i, v)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCorrespondence(&buf, []*logitrace.BehaviorProfile{a, b}))

	rows, err := ReadCorrespondence(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for i := 0; i < a.Len(); i++ {
		require.Equal(t, a.At(i), rows[0][i])
		require.Equal(t, b.At(i), rows[1][i])
	}
}
