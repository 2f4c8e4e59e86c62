package domain

// FileStatus tracks a single uploaded GPC through a batch.
type FileStatus string

const (
	FileStatusQueued     FileStatus = "queued"
	FileStatusExtracting FileStatus = "extracting"
	FileStatusGenerating FileStatus = "generating"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusError      FileStatus = "error"
)

// Terminal reports whether no further transitions are allowed.
func (s FileStatus) Terminal() bool {
	return s == FileStatusCompleted || s == FileStatusError
}

// allowedTransitions encodes queued -> extracting -> generating -> completed | error.
var allowedTransitions = map[FileStatus][]FileStatus{
	FileStatusQueued:     {FileStatusExtracting, FileStatusError},
	FileStatusExtracting: {FileStatusGenerating, FileStatusError},
	FileStatusGenerating: {FileStatusCompleted, FileStatusError},
}

// CanTransition reports whether moving from s to next is legal.
func (s FileStatus) CanTransition(next FileStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NameStyle selects how party names are rendered into the affidavit.
type NameStyle string

const (
	// NameStyleCourt upper-cases the claimant and renders defendants as "Given SURNAME".
	NameStyleCourt NameStyle = "court"
	// NameStyleVerbatim inserts names exactly as extracted.
	NameStyleVerbatim NameStyle = "verbatim"
)

// ParseNameStyle falls back to NameStyleCourt for unknown values.
func ParseNameStyle(s string) NameStyle {
	if NameStyle(s) == NameStyleVerbatim {
		return NameStyleVerbatim
	}
	return NameStyleCourt
}

// ContentTypeDocx is the MIME type of generated affidavits.
const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ContentTypePDF is the only accepted upload type.
const ContentTypePDF = "application/pdf"
