package lock

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// formatTag is the fixed ASCII header every lock file starts with (spec §6:
// "Header: same ASCII tag [as the database] and a 32-bit lock-format
// version").
const formatTag = "FreeFileSync"

// FormatVersion is the lock-file format version this package writes and the
// only version it accepts on read.
const FormatVersion int32 = 1

// ErrLockVersionUnsupported is returned by DecodePayload when a lock file's
// version does not match FormatVersion.
var ErrLockVersionUnsupported = errors.New("lock: unsupported format version")

// ErrLockCorrupt is returned by DecodePayload when the lock file's bytes
// cannot be parsed as a payload.
var ErrLockCorrupt = errors.New("lock: corrupt payload")

// Payload is the structured content written into a lock file on acquisition
// (spec §4.7 "a structured payload (lock GUID, host name, user id,
// session/process id)").
type Payload struct {
	GUID      uuid.UUID
	Host      string
	User      string
	ProcessID uint64
}

// EncodePayload serializes p into the on-disk lock-file format: the fixed
// ASCII tag, a little-endian int32 version, the 16-byte GUID, then
// length-prefixed host and user strings, then the process id as an
// unsigned 64-bit integer (spec §6 "Process id and session id are
// serialized as unsigned 64-bit to guarantee cross-architecture
// portability").
func EncodePayload(p Payload) []byte {
	var buf bytes.Buffer
	buf.WriteString(formatTag)
	binary.Write(&buf, binary.LittleEndian, FormatVersion)
	buf.Write(p.GUID[:])
	writeString(&buf, p.Host)
	writeString(&buf, p.User)
	binary.Write(&buf, binary.LittleEndian, p.ProcessID)
	return buf.Bytes()
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

// DecodePayload parses the bytes written by EncodePayload.
func DecodePayload(data []byte) (Payload, error) {
	if len(data) < len(formatTag)+4 || string(data[:len(formatTag)]) != formatTag {
		return Payload{}, ErrLockCorrupt
	}
	r := bytes.NewReader(data[len(formatTag):])

	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return Payload{}, ErrLockCorrupt
	}
	if version != FormatVersion {
		return Payload{}, ErrLockVersionUnsupported
	}

	var payload Payload
	if _, err := r.Read(payload.GUID[:]); err != nil {
		return Payload{}, ErrLockCorrupt
	}

	host, err := readString(r)
	if err != nil {
		return Payload{}, err
	}
	payload.Host = host

	user, err := readString(r)
	if err != nil {
		return Payload{}, err
	}
	payload.User = user

	if err := binary.Read(r, binary.LittleEndian, &payload.ProcessID); err != nil {
		return Payload{}, ErrLockCorrupt
	}

	return payload, nil
}

func readString(r *bytes.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", ErrLockCorrupt
	}
	buf := make([]byte, length)
	if _, err := r.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLockCorrupt, err)
	}
	return string(buf), nil
}
