package bridge

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/fresh/internal/config"
)

// Kind identifies the type of a background result.
type Kind int

const (
	// KindGrep is a content search result.
	KindGrep Kind = iota + 1
	// KindFiles is a file listing result.
	KindFiles
	// KindConfig is a configuration reload.
	KindConfig
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGrep:
		return "grep"
	case KindFiles:
		return "files"
	case KindConfig:
		return "config"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message is a completed background result.
type Message interface {
	// Kind reports the result type.
	Kind() Kind
	// Request identifies the request the result answers.
	Request() Request
}

// Request identifies one background request. Query is the staleness key;
// ID correlates log lines and ties a result to its producer.
type Request struct {
	ID    uuid.UUID
	Kind  Kind
	Query string
}

// NewRequest creates a request with a fresh ID.
func NewRequest(kind Kind, query string) Request {
	return Request{ID: uuid.New(), Kind: kind, Query: query}
}

// String returns a short description for logging.
func (r Request) String() string {
	return fmt.Sprintf("%s %q [%s]", r.Kind, r.Query, r.ID)
}

// GrepMatch is one content search hit. Line and Column are 1-based as
// reported by git.
type GrepMatch struct {
	File    string
	Line    int
	Column  int
	Content string
}

// GrepResults is a completed content search.
type GrepResults struct {
	Req     Request
	Matches []GrepMatch
}

// Kind implements Message.
func (GrepResults) Kind() Kind { return KindGrep }

// Request implements Message.
func (m GrepResults) Request() Request { return m.Req }

// FileListResults is a completed file listing, best matches first.
type FileListResults struct {
	Req   Request
	Files []string
}

// Kind implements Message.
func (FileListResults) Kind() Kind { return KindFiles }

// Request implements Message.
func (m FileListResults) Request() Request { return m.Req }

// ConfigReloaded carries a freshly loaded configuration. Err is set when
// the file changed but could not be loaded; Config is nil in that case.
type ConfigReloaded struct {
	Req    Request
	Config *config.Config
	Err    error
}

// Kind implements Message.
func (ConfigReloaded) Kind() Kind { return KindConfig }

// Request implements Message.
func (m ConfigReloaded) Request() Request { return m.Req }
