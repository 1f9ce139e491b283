package iface

// Encoder turns a frame of PCM samples into one codec payload.
type Encoder interface {
	Encode(pcm []int16) ([]byte, error)
}

// Decoder turns one codec payload back into PCM samples.
type Decoder interface {
	Decode(encoded []byte) ([]int16, error)
}
