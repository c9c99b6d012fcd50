package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
	return &buf
}

func TestFieldsAreSortedAndFormatted(t *testing.T) {
	assert.Equal(t, " a=1 b=two", formatFields(Fields{"b": "two", "a": 1}))
	assert.Equal(t, "", formatFields(nil))
}

func TestLevelsArePrefixed(t *testing.T) {
	buf := captureLog(t)

	Info("loaded", Fields{"instrument": "piano"})
	Warn("fallback", nil)
	Error("load failed", errors.New("boom"), Fields{"instrument": "cello"})

	assert := assert.New(t)
	assert.Contains(buf.String(), "[INFO] loaded instrument=piano\n")
	assert.Contains(buf.String(), "[WARN] fallback\n")
	assert.Contains(buf.String(), "[ERROR] load failed: boom instrument=cello\n")
}
