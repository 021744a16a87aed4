package pythoneval

import (
	"encoding/binary"

	spooky "github.com/dgryski/go-spooky"
)

// hasher accumulates identities into a signature
type hasher struct {
	buf []byte
}

func (h *hasher) add(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.buf = append(h.buf, b[:]...)
}

func (h *hasher) addString(s string) {
	h.add(uint64(len(s)))
	h.buf = append(h.buf, s...)
}

func (h *hasher) addSet(s Set) {
	h.add(uint64(len(s)))
	for _, c := range s {
		h.add(c.ID())
	}
}

func (h *hasher) sum() uint64 {
	return spooky.Hash64(h.buf)
}
