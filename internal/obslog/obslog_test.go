package obslog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/internal/obslog"
)

func TestWriterLogger_SuppressesBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	logger := obslog.NewWriterLogger(&buf, obslog.LevelWarn)

	logger.Info("r2", "assignment computed", nil)
	require.Empty(t, buf.String())

	logger.Warn("r2", "deficit penalty applied", nil)
	require.Contains(t, buf.String(), "level=warn")
}

func TestWriterLogger_ErrorNeverSuppressed(t *testing.T) {
	var buf bytes.Buffer
	logger := obslog.NewWriterLogger(&buf, obslog.LevelError+100)

	logger.Error("validate", "staffing violation", obslog.Fields{"code": "Mnuc", "week": 5})
	line := buf.String()
	require.Contains(t, line, "level=error")
	require.Contains(t, line, "phase=validate")
	require.True(t, strings.Contains(line, "code=Mnuc") && strings.Contains(line, "week=5"))
}

func TestWriterLogger_FieldsSortedDeterministically(t *testing.T) {
	var buf bytes.Buffer
	logger := obslog.NewWriterLogger(&buf, obslog.LevelDebug)
	logger.Debug("nf", "layer advanced", obslog.Fields{"zeta": 1, "alpha": 2})

	line := buf.String()
	require.Less(t, strings.Index(line, "alpha="), strings.Index(line, "zeta="))
}

func TestNop_DiscardsEverything(t *testing.T) {
	var n obslog.Nop
	n.Error("x", "y", obslog.Fields{"a": 1}) // must not panic
}
