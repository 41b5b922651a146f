package metadata

// Object types a header can declare.
const (
	TypeProcedure = "procedure"
	TypeTable     = "table"
	TypeTrigger   = "trigger"
	TypeSequence  = "sequence"
)

// Parameter kinds used in generated comment statements.
const (
	KindParameter = "parameter"
	KindColumn    = "column"
)

// declaration maps a header tag to its object type and parameter kind.
type declaration struct {
	objectType string
	paramKind  string
}

var declarations = map[string]declaration{
	"fn": {TypeProcedure, KindParameter},
	"tb": {TypeTable, KindColumn},
	"tg": {TypeTrigger, ""},
	"sq": {TypeSequence, ""},
}

// Param documents one input or output of the declared object.
type Param struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// Info is the parsed header of a fragment. Empty strings mean absent.
// ParamKind is set only for procedures and tables.
type Info struct {
	Name        string  `json:"name,omitempty"`
	Type        string  `json:"type,omitempty"`
	Brief       string  `json:"brief,omitempty"`
	ParamKind   string  `json:"param_kind,omitempty"`
	Inputs      []Param `json:"inputs,omitempty"`
	Outputs     []Param `json:"outputs,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Declared reports whether the header named an object.
func (i Info) Declared() bool {
	return i.Name != "" && i.Type != ""
}

// Span is the byte range of the header block inside the fragment,
// delimiters included. The zero Span means no header was found.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool {
	return s.End <= s.Start
}
