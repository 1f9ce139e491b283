package convert

// IsFrameSizeValid reports whether frameSize is a legal codec frame length
// for the given sample rate: 2.5, 5, 10, 20, 40 or 60 ms worth of samples.
func IsFrameSizeValid(sampleRate, frameSize int) bool {
	base := sampleRate / 400 // 2.5 ms
	if base == 0 {
		return false
	}
	for _, mult := range []int{1, 2, 4, 8, 16, 24} {
		if frameSize == base*mult {
			return true
		}
	}
	return false
}
