package world

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

var CheckCrashes = true
var CheckFailed error

func Check(e error) {
	if e != nil {
		CheckFailed = e
		if CheckCrashes {
			panic(e)
		}
	}
}

// Serialize writes a fixed size value (or a slice of fixed size values) to w.
// Writing into a bytes.Buffer cannot fail, so errors are treated as bugs.
func Serialize(w io.Writer, data any) {
	Check(binary.Write(w, binary.LittleEndian, data))
}

func SerializeSlice[T any](w io.Writer, s []T) {
	Serialize(w, int64(len(s)))
	Serialize(w, s)
}

// decoder reads fixed size values until the first error and then does
// nothing, so a sequence of reads only needs to be checked once at the end.
type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) read(data any) {
	if d.err != nil {
		return
	}
	d.err = binary.Read(d.r, binary.LittleEndian, data)
}

// maxSliceLen protects against allocating absurd amounts of memory when
// decoding garbage.
const maxSliceLen = 1 << 26

func readSlice[T any](d *decoder, s *[]T) {
	var n int64
	d.read(&n)
	if d.err != nil {
		return
	}
	if n < 0 || n > maxSliceLen {
		d.err = fmt.Errorf("invalid slice length: %d", n)
		return
	}
	*s = make([]T, n)
	d.read(*s)
}

var zipEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
var zipDecoder, _ = zstd.NewReader(nil)

func Zip(data []byte) []byte {
	return zipEncoder.EncodeAll(data, nil)
}

func Unzip(data []byte) ([]byte, error) {
	out, err := zipDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	return out, nil
}
