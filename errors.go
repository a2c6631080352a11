package memory

import "errors"

var (
	// ErrMissingField is an exported constant or variable used by the session store.
	ErrMissingField = errors.New("session field not found")
	// ErrReservedField is an exported constant or variable used by the session store.
	ErrReservedField = errors.New("session field name is reserved")
	// ErrCorruptedSession is an exported constant or variable used by the session store.
	ErrCorruptedSession = errors.New("corrupted session payload")
	// ErrBackendUnavailable is an exported constant or variable used by the session store.
	ErrBackendUnavailable = errors.New("session backend unavailable")
	// ErrSessionTooLarge is an exported constant or variable used by the session store.
	ErrSessionTooLarge = errors.New("encoded session exceeds configured maximum size")
)
