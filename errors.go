package matgen

import "errors"

var (
	// ErrEmptySet indicates a texture set with no matched channels.
	ErrEmptySet = errors.New("empty texture set")

	// ErrNoChannels indicates a channel table with no enabled channels.
	ErrNoChannels = errors.New("no enabled channels")

	// ErrUnknownProcessor indicates a channel spec with an unwireable processor kind.
	ErrUnknownProcessor = errors.New("unknown processor node kind")

	// ErrGraphClosed indicates an operation on a committed or rolled back graph.
	ErrGraphClosed = errors.New("graph already closed")

	// ErrUnknownNode indicates a graph operation on a node it does not own.
	ErrUnknownNode = errors.New("unknown graph node")

	// ErrUnknownObject indicates a material assignment to an object the host never imported.
	ErrUnknownObject = errors.New("unknown imported object")

	// ErrNoImporter indicates model import was requested from a host without import support.
	ErrNoImporter = errors.New("host does not support model import")

	// ErrNoModelsDir indicates model import was requested without a models directory.
	ErrNoModelsDir = errors.New("models directory not set")
)
