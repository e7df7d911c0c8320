package dat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGammaLUTEndpoints(t *testing.T) {
	assert.EqualValues(t, 0, gammaLUT[0])
	assert.EqualValues(t, 255, gammaLUT[255])
}

func TestGammaLUTFormula(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := byte(math.Round(math.Pow(float64(i)/255.0, 2.2) * 255.0))
		assert.Equal(t, want, gammaLUT[i], "i=%d", i)
	}
}
