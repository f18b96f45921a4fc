package database

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dothezz/foldersync/pkg/compression"
)

// sideFile is the fully decoded contents of one side's on-disk file: a
// header-verified format version, the session that produced it, this side's
// own sub-stream, and this side's half of the shared sub-stream.
type sideFile struct {
	Version   int32
	Session   uuid.UUID
	OwnStream sideShape
	SharedHalf []byte
}

func compressJSON(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal database payload")
	}
	var buf bytes.Buffer
	writer := compression.NewCompressingWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil, errors.Wrap(err, "unable to compress database payload")
	}
	return buf.Bytes(), nil
}

func decompressJSON(compressed []byte, v interface{}) error {
	reader := compression.NewDecompressingReader(bytes.NewReader(compressed))
	data, err := io.ReadAll(reader)
	if err != nil {
		return errors.Wrap(err, "unable to decompress database payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "unable to unmarshal database payload")
	}
	return nil
}

func writeBlock(buf *bytes.Buffer, data []byte) {
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.Write(data)
}

func readBlock(r *bytes.Reader) ([]byte, error) {
	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return nil, ErrDatabaseCorrupt
	}
	data := make([]byte, binary.LittleEndian.Uint32(length[:]))
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ErrDatabaseCorrupt
	}
	return data, nil
}

// encodeSideFile serializes one side's file: header, session id, this side's
// own compressed sub-stream, and its half of the compressed shared
// sub-stream.
func encodeSideFile(session uuid.UUID, own []byte, sharedHalf []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(formatTag)
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], uint32(FormatVersion))
	buf.Write(version[:])

	guidBytes, _ := session.MarshalBinary()
	buf.Write(guidBytes)

	writeBlock(&buf, own)
	writeBlock(&buf, sharedHalf)

	return buf.Bytes()
}

func decodeSideFile(data []byte) (sideFile, error) {
	if len(data) < len(formatTag)+4+16 {
		return sideFile{}, ErrDatabaseCorrupt
	}
	if string(data[:len(formatTag)]) != formatTag {
		return sideFile{}, ErrDatabaseCorrupt
	}
	offset := len(formatTag)
	version := int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if version != FormatVersion {
		return sideFile{}, ErrDatabaseVersionUnsupported
	}

	var session uuid.UUID
	if err := session.UnmarshalBinary(data[offset : offset+16]); err != nil {
		return sideFile{}, ErrDatabaseCorrupt
	}
	offset += 16

	r := bytes.NewReader(data[offset:])
	own, err := readBlock(r)
	if err != nil {
		return sideFile{}, err
	}
	sharedHalf, err := readBlock(r)
	if err != nil {
		return sideFile{}, err
	}

	var ownShape sideShape
	if err := decompressJSON(own, &ownShape); err != nil {
		return sideFile{}, err
	}

	return sideFile{Version: version, Session: session, OwnStream: ownShape, SharedHalf: sharedHalf}, nil
}

// splitInHalf divides data into two pieces, the first holding the larger
// half when the length is odd.
func splitInHalf(data []byte) ([]byte, []byte) {
	mid := (len(data) + 1) / 2
	return data[:mid], data[mid:]
}
