package database

import (
	"testing"

	"github.com/google/uuid"
)

func TestEncodeDecodeSideFileRoundTrip(t *testing.T) {
	shared, left, _ := split(sampleTree())
	sharedCompressed, err := compressJSON(shared)
	if err != nil {
		t.Fatal(err)
	}
	leftCompressed, err := compressJSON(left)
	if err != nil {
		t.Fatal(err)
	}
	half1, half2 := splitInHalf(sharedCompressed)
	_ = half2

	session := uuid.New()
	encoded := encodeSideFile(session, leftCompressed, half1)

	decoded, err := decodeSideFile(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Session != session {
		t.Errorf("session mismatch: got %v want %v", decoded.Session, session)
	}
	if len(decoded.OwnStream.Files) != len(left.Files) {
		t.Errorf("own stream files mismatch: got %d want %d", len(decoded.OwnStream.Files), len(left.Files))
	}
	if string(decoded.SharedHalf) != string(half1) {
		t.Errorf("shared half not preserved verbatim")
	}
}

func TestDecodeSideFileRejectsWrongVersion(t *testing.T) {
	encoded := encodeSideFile(uuid.New(), []byte("x"), []byte("y"))
	corrupted := append([]byte(nil), encoded...)
	corrupted[len(formatTag)] = 0xFF
	_, err := decodeSideFile(corrupted)
	if err != ErrDatabaseVersionUnsupported {
		t.Errorf("got %v, want ErrDatabaseVersionUnsupported", err)
	}
}

func TestDecodeSideFileRejectsBadTag(t *testing.T) {
	_, err := decodeSideFile([]byte("not a database file, too short"))
	if err != ErrDatabaseCorrupt {
		t.Errorf("got %v, want ErrDatabaseCorrupt", err)
	}
}

func TestSplitInHalfReassemblesExactly(t *testing.T) {
	data := []byte("0123456789")
	a, b := splitInHalf(data)
	if string(a)+string(b) != string(data) {
		t.Errorf("halves do not reassemble: %q + %q", a, b)
	}
	if len(a) < len(b) {
		t.Errorf("expected first half to be >= second half in length, got %d < %d", len(a), len(b))
	}
}
