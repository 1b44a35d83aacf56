package directive

import (
	"strings"

	"fortio.org/safecast"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

// Arg is one parsed argument with the span of its text for diagnostics.
type Arg struct {
	Key   string
	Value string
	Span  source.Span
}

// Directive is one parsed //obsgen: line.
type Directive struct {
	Kind Kind
	Name string
	Args []Arg
	Span source.Span
}

// Get returns the value of the named argument and whether it was present.
func (d Directive) Get(key string) (string, bool) {
	for _, a := range d.Args {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the named argument (flag or valued) was present.
func (d Directive) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// ArgSpan returns the span of the named argument, or the directive span when
// the argument is absent.
func (d Directive) ArgSpan(key string) source.Span {
	for _, a := range d.Args {
		if a.Key == key {
			return a.Span
		}
	}
	return d.Span
}

// ParseLine parses one comment line. line is the raw comment text including
// the leading //, base is its byte offset inside file. Returns the parsed
// directive, or ok=false when the line is not an obsgen directive at all.
// Malformed directives report through r and also return ok=false so callers
// uniformly skip them.
func ParseLine(r diag.Reporter, file source.FileID, base uint32, line string) (Directive, bool) {
	if !strings.HasPrefix(line, Prefix) {
		return Directive{}, false
	}

	span := func(start, end int) source.Span {
		s, err := safecast.Conv[uint32](start)
		if err != nil {
			return source.Span{File: file}
		}
		e, err := safecast.Conv[uint32](end)
		if err != nil {
			return source.Span{File: file}
		}
		return source.Span{File: file, Start: base + s, End: base + e}
	}

	rest := line[len(Prefix):]
	nameEnd := len(Prefix) + len(rest)
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		nameEnd = len(Prefix) + i
	}
	name := line[len(Prefix):nameEnd]
	lineSpan := span(0, len(strings.TrimRight(line, " \t")))

	spec, known := Lookup(name)
	if !known {
		diag.ReportError(r, diag.DirUnknownDirective, span(len(Prefix), nameEnd),
			"unknown directive "+name).
			WithNote(lineSpan, "registered directives: observable, property, command, recipient").
			Emit()
		return Directive{}, false
	}

	d := Directive{Kind: spec.Kind, Name: name, Span: lineSpan}
	ok := true

	pos := nameEnd
	tail := line[nameEnd:]
	for tail != "" {
		// skip separators
		trimmed := strings.TrimLeft(tail, " \t")
		pos += len(tail) - len(trimmed)
		tail = trimmed
		if tail == "" {
			break
		}

		end := len(tail)
		if i := strings.IndexAny(tail, " \t"); i >= 0 {
			end = i
		}
		tok := tail[:end]
		tokSpan := span(pos, pos+end)
		pos += end
		tail = tail[end:]

		key, value, hasValue := strings.Cut(tok, "=")
		if key == "" {
			diag.ReportError(r, diag.DirMalformedArgument, tokSpan,
				"argument is missing a key before '='").Emit()
			ok = false
			continue
		}

		as, found := spec.argSpec(key)
		if !found {
			b := diag.ReportError(r, diag.DirUnknownArgument, tokSpan,
				"directive "+name+" does not accept argument "+key)
			if canon, near := spec.argSpecFold(key); near {
				repl := canon.Key
				if hasValue && canon.Valued {
					repl += "=" + value
				}
				b.WithFix("replace with "+canon.Key,
					diag.TextEdit{Span: tokSpan, NewText: repl, OldText: tok})
			}
			b.Emit()
			ok = false
			continue
		}
		if as.Valued != hasValue {
			if as.Valued {
				diag.ReportError(r, diag.DirMalformedArgument, tokSpan,
					"argument "+key+" requires a value, e.g. "+key+"=Name").Emit()
			} else {
				diag.ReportError(r, diag.DirMalformedArgument, tokSpan,
					"argument "+key+" is a flag and takes no value").
					WithFix("drop the value",
						diag.TextEdit{Span: tokSpan, NewText: key, OldText: tok}).
					Emit()
			}
			ok = false
			continue
		}
		if hasValue && value == "" {
			diag.ReportError(r, diag.DirEmptyArgument, tokSpan,
				"argument "+key+" has an empty value").Emit()
			ok = false
			continue
		}
		if _, dup := d.Get(key); dup {
			diag.ReportError(r, diag.DirMalformedArgument, tokSpan,
				"argument "+key+" given more than once").Emit()
			ok = false
			continue
		}

		d.Args = append(d.Args, Arg{Key: key, Value: value, Span: tokSpan})
	}

	if !ok {
		return Directive{}, false
	}
	return d, true
}

// SplitList splits a comma-separated argument value ("A,B,C") into its
// entries, trimming surrounding spaces and dropping empties.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
