package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/openmwmm/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "plugin",
			ID:       "Morrowind.esm",
		}
		assert.Equal(t, "plugin Morrowind.esm not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("mod", "Better Bodies")
		assert.Equal(t, "mod Better Bodies not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("plugin", "missing.esp")
		wrapped := errors.Join(errors.New("uninstall failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "mods_dir",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for mods_dir: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "nothing to merge",
		}
		assert.Equal(t, "validation failed: nothing to merge", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestMalformedRecordError(t *testing.T) {
	t.Run("full context", func(t *testing.T) {
		err := &pkgerrors.MalformedRecordError{
			Path:    "plugins/broken.esp",
			Record:  "LEVC",
			Offset:  348,
			Message: "payload truncated",
		}
		assert.Equal(t, "malformed LEVC record in plugins/broken.esp at offset 348: payload truncated", err.Error())
		assert.True(t, pkgerrors.IsMalformedRecord(err))
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.MalformedRecordError{
			Offset:  16,
			Message: "truncated record header",
		}
		assert.Equal(t, "malformed record at offset 16: truncated record header", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrMalformedRecord))
	})

	t.Run("unwrap", func(t *testing.T) {
		inner := errors.New("unexpected EOF")
		err := &pkgerrors.MalformedRecordError{Message: "short read", Err: inner}
		assert.Equal(t, inner, errors.Unwrap(err))
	})
}

func TestCorruptListError(t *testing.T) {
	t.Run("with list id", func(t *testing.T) {
		err := &pkgerrors.CorruptListError{
			List:    "random_dae_dagger",
			Message: "entry count 4 does not match 3 decoded entries",
		}
		assert.Equal(t, `corrupt leveled list "random_dae_dagger": entry count 4 does not match 3 decoded entries`, err.Error())
		assert.True(t, pkgerrors.IsCorruptList(err))
	})

	t.Run("with path", func(t *testing.T) {
		err := &pkgerrors.CorruptListError{
			Path:    "data/lists.esp",
			Message: "missing NAME subrecord",
		}
		assert.Equal(t, "corrupt leveled list in data/lists.esp: missing NAME subrecord", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrCorruptList))
	})
}

func TestMergeError(t *testing.T) {
	inner := errors.New("boom")
	err := pkgerrors.NewMergeError("Expansion.esp", "creature_rats", inner)
	assert.Equal(t, `merging Expansion.esp (list "creature_rats"): boom`, err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))

	err = pkgerrors.NewMergeError("Expansion.esp", "", inner)
	assert.Equal(t, "merging Expansion.esp: boom", err.Error())
}

func TestIOError(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "/tmp/Merged_Lists.esp", inner)
		assert.Equal(t, "IO error during write of /tmp/Merged_Lists.esp: permission denied", err.Error())
		assert.Equal(t, inner, errors.Unwrap(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))

		err := pkgerrors.WrapIO("rename", "out.esp", errors.New("cross-device link"))
		require.Error(t, err)
		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "rename", ioErr.Operation)
		assert.Equal(t, "out.esp", ioErr.Path)
	})
}

func TestParseError(t *testing.T) {
	err := &pkgerrors.ParseError{
		Format:  "cfg",
		File:    "openmw.cfg",
		Line:    12,
		Message: "missing '=' separator",
	}
	assert.Equal(t, "parse error in cfg file openmw.cfg:12: missing '=' separator", err.Error())

	wrapped := pkgerrors.WrapParse("cfg", "openmw.cfg", errors.New("bad line"))
	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(wrapped, &parseErr))
	assert.Equal(t, "openmw.cfg", parseErr.File)
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.NewResourceError("install", "mod", "Better Heads", errors.New("copy failed"))
	assert.Equal(t, "failed to install mod Better Heads: copy failed", err.Error())

	assert.Nil(t, pkgerrors.WrapResource("load", "config", "", nil))
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("app", "mods_dir is not a directory", nil)
	assert.Equal(t, "configuration error in app: mods_dir is not a directory", err.Error())
}
