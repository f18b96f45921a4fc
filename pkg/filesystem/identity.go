package filesystem

// Identity is an opaque file-identity value (device + inode analogue, spec
// §3 FileDescriptor). It is used by the direction resolver's move detection
// (spec §4.5) to recognize that two otherwise-unrelated paths refer to what
// was, at some prior point, the same underlying file.
type Identity struct {
	// Device is the device (or volume) identifier on which the file resides.
	Device uint64
	// File is the file-specific identifier (inode, or file index) on that
	// device.
	File uint64
}

// Valid reports whether the identity carries real information. The zero
// value is used for entries where identity couldn't be determined (e.g. on
// Windows, where it isn't cheaply accessible through directory enumeration).
func (id Identity) Valid() bool {
	return id != Identity{}
}
