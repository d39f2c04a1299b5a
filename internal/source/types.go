package source

type (
	// FileID uniquely identifies a source unit within a FileSet. Zero means "no file".
	FileID uint32
	// FileFlags encodes metadata about a source unit.
	FileFlags uint8
)

// NoFileID marks spans that do not point into any registered unit.
const NoFileID FileID = 0

// AnonymousName is the display name of units registered without a name.
const AnonymousName = "<anon>"

const (
	// FileVirtual indicates the unit was added from memory (api call, stdin, test).
	FileVirtual FileFlags = 1 << iota
	// FileAnonymous marks a unit registered with an empty identity.
	FileAnonymous
	// FileHadBOM is set by Load when the content starts with a UTF-8 BOM. The BOM is kept.
	FileHadBOM
	// FileHasCRLF is set by Load when the content contains \r\n. Line endings are kept.
	FileHasCRLF
)

// File is one registered source unit. Content is never modified after registration.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	// Base is the unit's position in the process-wide offset space.
	// Global offsets Base..Base+len(Content) belong to this unit only.
	Base    uint64
	LineIdx []uint32 // start offset of every line, LineIdx[0] == 0
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
