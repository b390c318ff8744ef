// Package store implements the reference in-memory database: a
// process-wide mapping from key name to a tagged entry (string, hash,
// list, or set), exposed through the command.Handler contract, emulating
// the subset of Redis commands needed to exercise the value model.
package store

import (
	"strings"
	"sync"

	"github.com/IceFireDB/vredis/value"
)

// Source is the error-reporting identity this database uses when it
// raises a RemoteError, mirroring how the RESP parser tags its own
// FileFormat errors with its own identity.
const Source = "<InternalDatabase>"

// Database is the reference CommandHandler: a single mutex guards the
// whole key space, so every command either completes atomically or has
// no observable effect.
type Database struct {
	mu       sync.Mutex
	entries  map[string]entry
	commands uint64
}

// New returns an empty Database.
func New() *Database {
	return &Database{entries: make(map[string]entry)}
}

type commandFunc func(d *Database, view *value.SegmentView) (value.Value, error)

var dispatch = map[string]commandFunc{
	"DEL":         (*Database).cmdDel,
	"EXISTS":      (*Database).cmdExists,
	"KEYS":        (*Database).cmdKeys,
	"RENAME":      (*Database).cmdRename,
	"RENAMENX":    (*Database).cmdRenameNX,
	"TYPE":        (*Database).cmdType,
	"SET":         (*Database).cmdSet,
	"SETNX":       (*Database).cmdSetNX,
	"GET":         (*Database).cmdGet,
	"GETSET":      (*Database).cmdGetSet,
	"GETRANGE":    (*Database).cmdGetRange,
	"STRLEN":      (*Database).cmdStrlen,
	"APPEND":      (*Database).cmdAppend,
	"MSET":        (*Database).cmdMSet,
	"INCR":        (*Database).cmdIncr,
	"DECR":        (*Database).cmdDecr,
	"INCRBY":      (*Database).cmdIncrBy,
	"DECRBY":      (*Database).cmdDecrBy,
	"HSET":        (*Database).cmdHSet,
	"HMSET":       (*Database).cmdHMSet,
	"HGET":        (*Database).cmdHGet,
	"HEXISTS":     (*Database).cmdHExists,
	"HDEL":        (*Database).cmdHDel,
	"HKEYS":       (*Database).cmdHKeys,
	"HLEN":        (*Database).cmdHLen,
	"HINCRBY":     (*Database).cmdHIncrBy,
	"LPUSH":       (*Database).cmdLPush,
	"RPUSH":       (*Database).cmdRPush,
	"LPOP":        (*Database).cmdLPop,
	"RPOP":        (*Database).cmdRPop,
	"LLEN":        (*Database).cmdLLen,
	"LINDEX":      (*Database).cmdLIndex,
	"LSET":        (*Database).cmdLSet,
	"LRANGE":      (*Database).cmdLRange,
	"LREM":        (*Database).cmdLRem,
	"LTRIM":       (*Database).cmdLTrim,
	"RPOPLPUSH":   (*Database).cmdRPopLPush,
	"SADD":        (*Database).cmdSAdd,
	"SREM":        (*Database).cmdSRem,
	"SCARD":       (*Database).cmdSCard,
	"SISMEMBER":   (*Database).cmdSIsMember,
	"SMEMBERS":    (*Database).cmdSMembers,
	"SMOVE":       (*Database).cmdSMove,
	"SPOP":        (*Database).cmdSPop,
	"SRANDMEMBER": (*Database).cmdSRandMember,
	"SINTER":      (*Database).cmdSInter,
	"SUNION":      (*Database).cmdSUnion,
	"SDIFF":       (*Database).cmdSDiff,
	"SINTERSTORE": (*Database).cmdSInterStore,
	"SUNIONSTORE": (*Database).cmdSUnionStore,
	"SDIFFSTORE":  (*Database).cmdSDiffStore,
	"SORT":        (*Database).cmdSort,
}

// Call implements command.Handler: acquire the mutex for the whole
// command, dispatch on the uppercased first argument, and produce a
// Value.
func (d *Database) Call(segment *value.Segment) (value.Value, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := value.NewSegmentView(segment)
	verbVal := view.Eat()
	verb, err := value.NewAccess(verbVal).ToString()
	if err != nil {
		return nil, err
	}
	verb = strings.ToUpper(verb)

	fn, ok := dispatch[verb]
	if !ok {
		return nil, value.NewRemoteError(Source, "Invalid command")
	}
	d.commands++
	return fn(d, view)
}

// CallVoid is the minimally-correct fallback in terms of Call.
func (d *Database) CallVoid(segment *value.Segment) error {
	_, err := d.Call(segment)
	return err
}

// Stats reports simple house-keeping counters: the number of commands
// executed and the number of live keys. It adds no new wire surface,
// it is a plain Go method for callers embedding this database (e.g. a
// future INFO-style reporting layer).
func (d *Database) Stats() (commands uint64, keys int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commands, len(d.entries)
}

// get returns the entry stored at name if it exists and is of type T,
// nil+false if absent, and a RemoteError if present under a different
// type.
func get[T entry](d *Database, name string) (T, bool, error) {
	var zero T
	e, ok := d.entries[name]
	if !ok {
		return zero, false, nil
	}
	typed, ok := e.(T)
	if !ok {
		return zero, false, value.NewRemoteError(Source, "Invalid type")
	}
	return typed, true, nil
}

// getCreate returns the existing entry of type T at name, or creates and
// stores a fresh one via newEntry.
func getCreate[T entry](d *Database, name string, newEntry func() T) (T, error) {
	typed, ok, err := get[T](d, name)
	if err != nil {
		return typed, err
	}
	if ok {
		return typed, nil
	}
	fresh := newEntry()
	d.entries[name] = fresh
	return fresh, nil
}

func wrongArgCount(verb string) error {
	return value.NewRemoteError(Source, "ERR wrong number of arguments for '"+strings.ToLower(verb)+"' command")
}

func invalidInteger() error {
	return value.NewRemoteError(Source, "ERR value is not an integer or out of range")
}
