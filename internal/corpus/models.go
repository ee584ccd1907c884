// Package corpus provides read-only access to the statutory section tables
// (BNS, IPC, CrPC) and the constitutional article table. The corpus is
// immutable input, loaded once at startup.
package corpus

// Code identifies one of the three parallel criminal codebooks.
type Code string

const (
	CodeBNS  Code = "BNS"
	CodeIPC  Code = "IPC"
	CodeCrPC Code = "CrPC"
)

// Section is a single statutory section. Identity is (Code, Number).
// Number supports alphanumeric suffixes ("41A", "364A"); numbering is not
// globally dense and gaps are permitted.
type Section struct {
	Code             Code
	Number           string
	Title            string
	Description      string
	Keywords         []string
	LinkedDomains    []string
	LinkedSubdomains []string
}

// Article is a single constitutional article. Number supports suffixes
// ("19A", "300A", "2A").
type Article struct {
	Number                string
	Title                 string
	Summary               string
	Content               string
	FundamentalRightsFlag bool
	DomainHints           []string
	Keywords              []string
}

// Stats summarizes the loaded corpus, per the engine's stats() boundary
// operation (spec.md §6). Counts are whatever the loaded tables contain;
// the store never hardcodes expected sizes.
type Stats struct {
	BNSSectionCount  int
	IPCSectionCount  int
	CrPCSectionCount int
	ArticleCount     int
}
