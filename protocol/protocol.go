// Package protocol implements the benchbox line protocol: tagged CRLF
// terminated response lines framed by BEGIN/END transaction markers.
package protocol

// Response line tags. Every machine-readable line starts with one of
// these prefixes.
const (
	TagBegin   = "BEGIN:"
	TagEndOK   = "END:OK"
	TagEndErr  = "END:ERROR"
	TagInfo    = "#:"
	TagWarning = "W:"
	TagError   = "E:"
	TagDebug   = "?:"
	TagBool    = "B:"
	TagString  = "S:"
	TagStrArr  = "SA:"
	TagInt8    = "S8:"
	TagUint8   = "U8:"
	TagInt16   = "S16:"
	TagUint16  = "U16:"
	TagInt32   = "S32:"
	TagUint32  = "U32:"
	TagFloat   = "F:"
	TagHex8    = "H8:"
	TagHex16   = "H16:"
	TagHex32   = "H32:"
)

// Framing constants.
const (
	LineEnding = "\r\n"
	Separator  = ","
)
