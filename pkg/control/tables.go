package control

// SampleRates lists the sample rates Dante devices accept, in Hz.
var SampleRates = []int{44100, 48000, 88200, 96000, 176400, 192000}

// SampleRateLabels maps sample rates to their display labels.
var SampleRateLabels = map[int]string{
	44100:  "44.1 kHz",
	48000:  "48 kHz",
	88200:  "88.2 kHz",
	96000:  "96 kHz",
	176400: "176.4 kHz",
	192000: "192 kHz",
}

// Encodings lists the PCM bit depths Dante devices accept.
var Encodings = []int{16, 24, 32}

// EncodingLabels maps encodings to their display labels.
var EncodingLabels = map[int]string{
	16: "PCM 16-bit",
	24: "PCM 24-bit",
	32: "PCM 32-bit",
}

// GainLabelsInput maps input gain levels to their display labels.
var GainLabelsInput = map[int]string{
	1: "+24 dBu",
	2: "+4 dBu",
	3: "+0 dBu",
	4: "0 dBV",
	5: "-10 dBV",
}

// GainLabelsOutput maps output gain levels to their display labels.
var GainLabelsOutput = map[int]string{
	1: "+18 dBu",
	2: "+4 dBu",
	3: "+0 dBu",
	4: "0 dBV",
	5: "-10 dBV",
}

// AVIOInputModels lists the AVIO adapter models with analog inputs.
var AVIOInputModels = []string{"DAI1", "DAI2"}

// AVIOOutputModels lists the AVIO adapter models with analog outputs.
var AVIOOutputModels = []string{"DAO1", "DAO2"}

// SampleRateForLabel returns the sample rate for a display label.
func SampleRateForLabel(label string) (int, bool) {
	for rate, l := range SampleRateLabels {
		if l == label {
			return rate, true
		}
	}
	return 0, false
}

// EncodingForLabel returns the encoding bit depth for a display label.
func EncodingForLabel(label string) (int, bool) {
	for enc, l := range EncodingLabels {
		if l == label {
			return enc, true
		}
	}
	return 0, false
}

// IsAVIOInput reports whether the model ID is an AVIO input adapter.
func IsAVIOInput(modelID string) bool {
	for _, m := range AVIOInputModels {
		if m == modelID {
			return true
		}
	}
	return false
}

// IsAVIOOutput reports whether the model ID is an AVIO output adapter.
func IsAVIOOutput(modelID string) bool {
	for _, m := range AVIOOutputModels {
		if m == modelID {
			return true
		}
	}
	return false
}
