package semantic

// AddStatus is the outcome of registering a declaration.
type AddStatus int

const (
	Added AddStatus = iota
	Duplicate
	Unknown
)

func (s AddStatus) String() string {
	switch s {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Registry keeps the effective header set of a request. The first
// declaration of a key wins; later ones are reported and dropped.
type Registry struct {
	sink    *Sink
	headers []Header
	index   map[string]int
}

// NewRegistry creates an empty registry reporting into sink.
func NewRegistry(sink *Sink) *Registry {
	return &Registry{
		sink:  sink,
		index: make(map[string]int),
	}
}

// AddHeader registers h, comparing keys after NormalizeKey.
func (r *Registry) AddHeader(h Header) AddStatus {
	name := h.Name()
	if _, ok := r.index[name]; ok {
		r.sink.Error(CodeDuplicateHeader, h.Key)
		return Duplicate
	}
	r.index[name] = len(r.headers)
	r.headers = append(r.headers, h)
	return Added
}

// Has reports whether a header with the given normalized key was registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the registered header with the given normalized key.
func (r *Registry) Lookup(name string) (Header, bool) {
	i, ok := r.index[name]
	if !ok {
		return Header{}, false
	}
	return r.headers[i], true
}

// Headers returns the effective headers in declaration order.
func (r *Registry) Headers() []Header {
	return append([]Header(nil), r.headers...)
}

// Len returns the number of registered headers.
func (r *Registry) Len() int {
	return len(r.headers)
}

// digestElements is the whitelist of digest authentication parameters.
var digestElements = map[string]struct{}{
	"username":  {},
	"realm":     {},
	"uri":       {},
	"algorithm": {},
	"nonce":     {},
	"nc":        {},
	"cnonce":    {},
	"qop":       {},
	"response":  {},
	"opaque":    {},
}

// IsDigestElement reports whether name is a known digest parameter.
func IsDigestElement(name string) bool {
	_, ok := digestElements[name]
	return ok
}

// DigestScope tracks the parameters of a single digest header occurrence.
// Each WWW-Authenticate or Authorization header gets its own scope, so the
// same parameter may appear once in each of them.
type DigestScope struct {
	sink *Sink
	seen map[string]struct{}
}

func newDigestScope(sink *Sink) *DigestScope {
	return &DigestScope{sink: sink, seen: make(map[string]struct{})}
}

// Add registers the parameter named by tok.
func (d *DigestScope) Add(tok Token) AddStatus {
	name := tok.Text()
	if !IsDigestElement(name) {
		d.sink.Error(CodeUnknownDigestElement, tok)
		return Unknown
	}
	if _, ok := d.seen[name]; ok {
		d.sink.Error(CodeDuplicateDigestElement, tok)
		return Duplicate
	}
	d.seen[name] = struct{}{}
	return Added
}

// Len returns the number of distinct parameters registered so far.
func (d *DigestScope) Len() int {
	return len(d.seen)
}
