package log

import (
	"os"

	logrus "gopkg.in/Sirupsen/logrus.v0"
)

var backend = logrus.New()

// Entry is a chainable, lazily-built log line. Field accessors (Uint8,
// Uint16, Str, ...) append to fields and return the same Entry so calls read
// as a single chain; End() formats and emits the line, or does nothing if
// the entry was created disabled.
type Entry struct {
	mod    Module
	level  logrus.Level
	msg    string
	fields []Field
	live   bool
}

func newEntry(m Module, lvl logrus.Level, msg string) *Entry {
	return &Entry{mod: m, level: lvl, msg: msg, live: m.Enabled(lvl)}
}

func (e *Entry) append(f Field) *Entry {
	if e.live {
		e.fields = append(e.fields, f)
	}
	return e
}

func (e *Entry) Str(key, val string) *Entry   { return e.append(Field{Key: key, Type: FieldString, Str: val}) }
func (e *Entry) Bool(key string, val bool) *Entry {
	var n uint64
	if val {
		n = 1
	}
	return e.append(Field{Key: key, Type: FieldBool, Num: n})
}
func (e *Entry) Int(key string, val int) *Entry {
	return e.append(Field{Key: key, Type: FieldInt, Num: uint64(int64(val))})
}
func (e *Entry) Uint(key string, val uint) *Entry {
	return e.append(Field{Key: key, Type: FieldUint, Num: uint64(val)})
}
func (e *Entry) Uint8(key string, val uint8) *Entry {
	return e.append(Field{Key: key, Type: FieldHex8, Num: uint64(val)})
}
func (e *Entry) Uint16(key string, val uint16) *Entry {
	return e.append(Field{Key: key, Type: FieldHex16, Num: uint64(val)})
}
func (e *Entry) Uint32(key string, val uint32) *Entry {
	return e.append(Field{Key: key, Type: FieldHex32, Num: uint64(val)})
}
func (e *Entry) Err(key string, err error) *Entry {
	return e.append(Field{Key: key, Type: FieldError, Err: err})
}
func (e *Entry) Stringer(key string, v interface{ String() string }) *Entry {
	return e.append(Field{Key: key, Type: FieldStringer, Stg: v})
}

// End formats and emits the entry. It is a no-op if the module/level
// combination was disabled when the entry was created.
func (e *Entry) End() {
	if !e.live {
		return
	}
	fields := make(logrus.Fields, len(e.fields)+1)
	fields["mod"] = e.mod.String()
	for _, f := range e.fields {
		fields[f.Key] = f.Value()
	}
	logEntry := backend.WithFields(fields)
	switch e.level {
	case logrus.DebugLevel:
		logEntry.Debug(e.msg)
	case logrus.WarnLevel:
		logEntry.Warn(e.msg)
	case logrus.ErrorLevel:
		logEntry.Error(e.msg)
	case logrus.FatalLevel:
		logEntry.Error(e.msg)
		os.Exit(1)
	default:
		logEntry.Info(e.msg)
	}
}
