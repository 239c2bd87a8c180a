package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors. Callers can match these with errors.Is.
var (
	ErrEmptyLine  = errors.New("empty line")
	ErrUnknownTag = errors.New("unknown tag")
	ErrBadPayload = errors.New("bad payload")
)

// Kind classifies one parsed response line.
type Kind int

const (
	KindInvalid Kind = iota
	KindBegin
	KindEndOK
	KindEndError
	KindInfo
	KindWarning
	KindError
	KindDebug
	KindBool
	KindString
	KindStringArray
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat
	KindHex8
	KindHex16
	KindHex32
)

var kindNames = map[Kind]string{
	KindInvalid:     "invalid",
	KindBegin:       "begin",
	KindEndOK:       "end-ok",
	KindEndError:    "end-error",
	KindInfo:        "info",
	KindWarning:     "warning",
	KindError:       "error",
	KindDebug:       "debug",
	KindBool:        "bool",
	KindString:      "string",
	KindStringArray: "string-array",
	KindInt8:        "int8",
	KindUint8:       "uint8",
	KindInt16:       "int16",
	KindUint16:      "uint16",
	KindInt32:       "int32",
	KindUint32:      "uint32",
	KindFloat:       "float",
	KindHex8:        "hex8",
	KindHex16:       "hex16",
	KindHex32:       "hex32",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Response is one parsed line. Only the fields matching Kind are set:
// Text for free-form lines, Name plus one value slice for data lines,
// File/Line/Func for debug lines.
type Response struct {
	Kind    Kind
	Name    string
	Text    string
	Bool    bool
	Strings []string
	Ints    []int64
	Uints   []uint64
	Floats  []float64
	File    string
	Line    int
	Func    string
	Raw     string
}

// IsTerminal reports whether this line closes a transaction.
func (r Response) IsTerminal() bool {
	return r.Kind == KindEndOK || r.Kind == KindEndError
}

// OK reports whether this line is a successful transaction close.
func (r Response) OK() bool {
	return r.Kind == KindEndOK
}

// splitNamed separates a "<name>:<values>" payload. With fromEnd set the
// rightmost colon is the boundary, which keeps hierarchical names such as
// "porta:pin3" intact for payloads whose values cannot contain a colon.
func splitNamed(rest string, fromEnd bool) (name, values string, err error) {
	var i int
	if fromEnd {
		i = strings.LastIndexByte(rest, ':')
	} else {
		i = strings.IndexByte(rest, ':')
	}
	if i < 0 {
		return "", "", fmt.Errorf("%w: missing name separator", ErrBadPayload)
	}
	return rest[:i], rest[i+1:], nil
}

func parseInts(values string, bits int) ([]int64, error) {
	if values == "" {
		return nil, nil
	}
	parts := strings.Split(values, Separator)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPayload, p)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseUints(values string, base, bits int) ([]uint64, error) {
	if values == "" {
		return nil, nil
	}
	parts := strings.Split(values, Separator)
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, base, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPayload, p)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(values string) ([]float64, error) {
	if values == "" {
		return nil, nil
	}
	parts := strings.Split(values, Separator)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPayload, p)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseLine parses one response line, with or without its terminator.
func ParseLine(raw string) (Response, error) {
	line := strings.TrimRight(raw, "\r\n")
	r := Response{Raw: line}
	if line == "" {
		return r, ErrEmptyLine
	}

	switch line {
	case TagBegin:
		r.Kind = KindBegin
		return r, nil
	case TagEndOK:
		r.Kind = KindEndOK
		return r, nil
	case TagEndErr:
		r.Kind = KindEndError
		return r, nil
	}

	var err error
	switch {
	case strings.HasPrefix(line, TagInfo):
		r.Kind = KindInfo
		r.Text = line[len(TagInfo):]

	case strings.HasPrefix(line, TagWarning):
		r.Kind = KindWarning
		r.Text = line[len(TagWarning):]

	case strings.HasPrefix(line, TagError):
		r.Kind = KindError
		r.Text = line[len(TagError):]

	case strings.HasPrefix(line, TagDebug):
		r.Kind = KindDebug
		parts := strings.SplitN(line[len(TagDebug):], ":", 4)
		if len(parts) != 4 {
			return r, fmt.Errorf("%w: debug line", ErrBadPayload)
		}
		r.File = parts[0]
		r.Line, err = strconv.Atoi(parts[1])
		if err != nil {
			return r, fmt.Errorf("%w: debug line number %q", ErrBadPayload, parts[1])
		}
		r.Func = parts[2]
		r.Text = parts[3]

	case strings.HasPrefix(line, TagBool):
		r.Kind = KindBool
		var value string
		r.Name, value, err = splitNamed(line[len(TagBool):], true)
		if err != nil {
			return r, err
		}
		switch value {
		case "true":
			r.Bool = true
		case "false":
			r.Bool = false
		default:
			return r, fmt.Errorf("%w: bool value %q", ErrBadPayload, value)
		}

	case strings.HasPrefix(line, TagStrArr):
		r.Kind = KindStringArray
		var values string
		r.Name, values, err = splitNamed(line[len(TagStrArr):], false)
		if err != nil {
			return r, err
		}
		if values != "" {
			r.Strings = strings.Split(values, Separator)
		}

	case strings.HasPrefix(line, TagString):
		r.Kind = KindString
		r.Name, r.Text, err = splitNamed(line[len(TagString):], false)
		if err != nil {
			return r, err
		}

	case strings.HasPrefix(line, TagInt8):
		r.Kind = KindInt8
		r.Name, r.Ints, err = namedInts(line[len(TagInt8):], 8)

	case strings.HasPrefix(line, TagUint8):
		r.Kind = KindUint8
		r.Name, r.Uints, err = namedUints(line[len(TagUint8):], 10, 8)

	case strings.HasPrefix(line, TagInt16):
		r.Kind = KindInt16
		r.Name, r.Ints, err = namedInts(line[len(TagInt16):], 16)

	case strings.HasPrefix(line, TagUint16):
		r.Kind = KindUint16
		r.Name, r.Uints, err = namedUints(line[len(TagUint16):], 10, 16)

	case strings.HasPrefix(line, TagInt32):
		r.Kind = KindInt32
		r.Name, r.Ints, err = namedInts(line[len(TagInt32):], 32)

	case strings.HasPrefix(line, TagUint32):
		r.Kind = KindUint32
		r.Name, r.Uints, err = namedUints(line[len(TagUint32):], 10, 32)

	case strings.HasPrefix(line, TagFloat):
		r.Kind = KindFloat
		var values string
		r.Name, values, err = splitNamed(line[len(TagFloat):], true)
		if err == nil {
			r.Floats, err = parseFloats(values)
		}

	case strings.HasPrefix(line, TagHex8):
		r.Kind = KindHex8
		r.Name, r.Uints, err = namedUints(line[len(TagHex8):], 16, 8)

	case strings.HasPrefix(line, TagHex16):
		r.Kind = KindHex16
		r.Name, r.Uints, err = namedUints(line[len(TagHex16):], 16, 16)

	case strings.HasPrefix(line, TagHex32):
		r.Kind = KindHex32
		r.Name, r.Uints, err = namedUints(line[len(TagHex32):], 16, 32)

	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownTag, line)
	}

	return r, err
}

func namedInts(rest string, bits int) (string, []int64, error) {
	name, values, err := splitNamed(rest, true)
	if err != nil {
		return "", nil, err
	}
	ints, err := parseInts(values, bits)
	return name, ints, err
}

func namedUints(rest string, base, bits int) (string, []uint64, error) {
	name, values, err := splitNamed(rest, true)
	if err != nil {
		return "", nil, err
	}
	uints, err := parseUints(values, base, bits)
	return name, uints, err
}
