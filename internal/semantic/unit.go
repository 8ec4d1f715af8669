package semantic

// Result is the outcome of one compilation. Code is empty whenever Errors
// is not.
type Result struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Code     string
}

// OK reports whether the compilation finished without errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Unit is the state of a single compilation: its diagnostics, its header
// registry, the request line and the body. Create one per input with
// NewUnit; a Unit must not be reused for another input.
type Unit struct {
	sink        *Sink
	registry    *Registry
	requestLine *RequestLine
	body        Body
	finished    *Result
}

// NewUnit returns a Unit with empty diagnostics and registry.
func NewUnit() *Unit {
	sink := &Sink{}
	return &Unit{
		sink:     sink,
		registry: NewRegistry(sink),
	}
}

// SetRequestLine records the request line. Only the first call has effect.
func (u *Unit) SetRequestLine(rl RequestLine) {
	if u.requestLine != nil {
		return
	}
	u.requestLine = &rl
}

// RequestLine returns the request line, if one was set.
func (u *Unit) RequestLine() (RequestLine, bool) {
	if u.requestLine == nil {
		return RequestLine{}, false
	}
	return *u.requestLine, true
}

// AddHeader registers a header; duplicates are reported and dropped.
func (u *Unit) AddHeader(h Header) AddStatus {
	return u.registry.AddHeader(h)
}

// Headers returns the effective headers in declaration order.
func (u *Unit) Headers() []Header {
	return u.registry.Headers()
}

// OpenDigest starts the parameter scope of one digest header occurrence.
func (u *Unit) OpenDigest() *DigestScope {
	return newDigestScope(u.sink)
}

// SetBody records the body, escaping it for embedding. Only the first
// call has effect.
func (u *Unit) SetBody(raw string) {
	if u.body.Present {
		return
	}
	u.body = Body{Text: EscapeBody(raw), Present: true}
}

// Body returns the recorded body.
func (u *Unit) Body() Body {
	return u.body
}

// SyntaxError records a front-end error anchored to tok.
func (u *Unit) SyntaxError(tok Token, format string, args ...interface{}) {
	u.sink.Errorf(tok, format, args...)
}

// Diagnostics exposes the sink of this unit.
func (u *Unit) Diagnostics() *Sink {
	return u.sink
}

// Finish runs the request-level checks and generates the code when no
// error was recorded. Calling Finish again returns the same result.
func (u *Unit) Finish() *Result {
	if u.finished != nil {
		return u.finished
	}
	u.CheckHeaders()
	u.CheckBody()

	res := &Result{
		Errors:   u.sink.Errors(),
		Warnings: u.sink.Warnings(),
	}
	if !u.sink.HasErrors() && u.requestLine != nil {
		res.Code = Emit(*u.requestLine, u.registry.Headers(), u.body)
	}
	u.finished = res
	return res
}
