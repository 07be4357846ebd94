package ad796x

import (
	"fmt"

	"github.com/go-audio/audio"
)

// Converter resolutions, in bits.
const (
	AD7960Bits = 18
	AD7961Bits = 16
)

// IntBuffer decodes raw sample words into an audio.IntBuffer.
// Each word holds a two's complement value in its low bits bits, which is sign-extended.
// rate is the conversion rate in samples per second.
func IntBuffer(words []uint32, bits int, rate int) *audio.IntBuffer {
	if bits < 1 || bits > 32 {
		panic(fmt.Sprintf("ad796x: invalid sample width %d", bits))
	}

	shift := 32 - bits
	data := make([]int, len(words))
	for i, w := range words {
		data[i] = int(int32(w<<shift) >> shift)
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  rate,
		},
		Data:           data,
		SourceBitDepth: bits,
	}
}
