package imports

// WebAssembly binary module header: 4-byte magic ("\0asm") followed by the
// 4-byte version. Only version 1 is recognized.
var (
	headerMagic   = []byte{0x00, 0x61, 0x73, 0x6D}
	headerVersion = []byte{0x01, 0x00, 0x00, 0x00}
)

// Section IDs for the sections this decoder recognizes. All other sections
// are skipped unparsed using their declared size.
const (
	sectionType   byte = 1 // Type section (function signatures)
	sectionImport byte = 2 // Import section
)

// funcTypeForm is the fixed form byte that opens every function type.
const funcTypeForm byte = 0x60

// Limits flags
const (
	limitsHasMax   byte = 0x01
	limitsShared   byte = 0x02
	limitsMemory64 byte = 0x04
)
