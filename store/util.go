package store

import (
	"encoding/binary"

	"github.com/vmihailenco/msgpack/v4"
)

func idToBytes(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func MsgpackMarshalPanic(val interface{}) []byte {
	bs, err := msgpack.Marshal(val)
	if err != nil {
		panic(err)
	}
	return bs
}

func MsgpackUnmarshal(data []byte, val interface{}) error {
	return msgpack.Unmarshal(data, val)
}
