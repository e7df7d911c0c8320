package dat

import "math"

// gammaLUT maps linear 0-255 color components to gamma 2.2 corrected
// values. Built once at startup, read-only afterwards, so encode workers
// can share it without locking.
var gammaLUT = buildGammaLUT(2.2)

func buildGammaLUT(gamma float64) [256]byte {
	var lut [256]byte
	for i := range lut {
		lut[i] = byte(math.Round(math.Pow(float64(i)/255.0, gamma) * 255.0))
	}
	return lut
}
