package bigmemcache

import (
	"encoding/binary"
	"fmt"
	"math"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// fixed part of an encoded record: totalLen, version, keyLen, payloadLen, createdTime
const recordOverhead = 4 + 4 + 2 + 4 + 8

// Record 是缓存中的一条记录.
type Record struct {
	Key         string
	Version     int32
	Payload     []byte
	CreatedTime int64
}

// EncodedLen 返回记录编码后的字节数.
func (r *Record) EncodedLen() int {
	return recordOverhead + len(r.Key) + len(r.Payload)
}

// EncodeRecord 将记录按小端序编码写入w:
//
//	u32 totalLen | i32 version | u16 keyLen key | u32 payloadLen payload | i64 createdTime
func EncodeRecord(w streamio.Writer, r *Record) error {
	if len(r.Key) > math.MaxUint16 {
		return streamio.NewError(streamio.InvalidInput, fmt.Errorf("key too long, KeyLen(%v)", len(r.Key)))
	}
	if uint64(r.EncodedLen()) > math.MaxUint32 {
		return streamio.NewError(streamio.InvalidInput, fmt.Errorf("record too large, PayloadLen(%v)", len(r.Payload)))
	}

	var hdr [4 + 4 + 2]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(r.EncodedLen()))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(r.Version))
	binary.LittleEndian.PutUint16(hdr[8:], uint16(len(r.Key)))
	if err := streamio.WriteAll(w, hdr[:]); err != nil {
		return err
	}
	// 对于[]byte或string类型来说, 先存大小, 再存实际的字节
	if err := streamio.WriteAll(w, []byte(r.Key)); err != nil {
		return err
	}

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(r.Payload)))
	if err := streamio.WriteAll(w, u32[:]); err != nil {
		return err
	}
	if err := streamio.WriteAll(w, r.Payload); err != nil {
		return err
	}

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], uint64(r.CreatedTime))
	return streamio.WriteAll(w, u64[:])
}

// DecodeRecord 从rd中读出一条记录. 数据不足时返回UnexpectedEOF, 长度字段前后矛盾时返回InvalidData.
func DecodeRecord(rd streamio.Reader) (*Record, error) {
	var hdr [4 + 4 + 2]byte
	if err := readField(rd, hdr[:], "header"); err != nil {
		return nil, err
	}
	totalLen := binary.LittleEndian.Uint32(hdr[0:])
	keyLen := int(binary.LittleEndian.Uint16(hdr[8:]))
	if uint64(totalLen) < uint64(recordOverhead+keyLen) {
		return nil, streamio.NewError(streamio.InvalidData,
			fmt.Errorf("StoredTotalLen(%v) too small for KeyLen(%v)", totalLen, keyLen))
	}

	rec := Record{Version: int32(binary.LittleEndian.Uint32(hdr[4:]))}

	key := make([]byte, keyLen)
	if err := readField(rd, key, "key"); err != nil {
		return nil, err
	}
	rec.Key = string(key)

	var u32 [4]byte
	if err := readField(rd, u32[:], "payload length"); err != nil {
		return nil, err
	}
	payloadLen := binary.LittleEndian.Uint32(u32[:])
	if want := uint64(recordOverhead) + uint64(keyLen) + uint64(payloadLen); want != uint64(totalLen) {
		return nil, streamio.NewError(streamio.InvalidData,
			fmt.Errorf("StoredTotalLen(%v) != TotalLen(%v)", totalLen, want))
	}
	rec.Payload = make([]byte, payloadLen)
	if err := readField(rd, rec.Payload, "payload"); err != nil {
		return nil, err
	}

	var u64 [8]byte
	if err := readField(rd, u64[:], "created time"); err != nil {
		return nil, err
	}
	rec.CreatedTime = int64(binary.LittleEndian.Uint64(u64[:]))

	return &rec, nil
}

func readField(rd streamio.Reader, p []byte, field string) error {
	err := streamio.ReadExact(rd, p)
	if err == streamio.ErrUnexpectedEOF {
		return streamio.NewError(streamio.UnexpectedEOF, fmt.Errorf("record truncated in %s", field))
	}
	return err
}
