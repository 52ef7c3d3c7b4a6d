package chasecam

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_LevelsAndPrefix(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("cam", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[cam] INFO: hello world")
	assert.Contains(t, errOut.String(), "[cam] WARN: careful")
	assert.Contains(t, errOut.String(), "[cam] ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "[cam] DEBUG: shown 2")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), "INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestDefaultLogger_NamedSharesSinks(t *testing.T) {
	var out, errOut bytes.Buffer
	root := NewWriterLogger("demo", false, &out, &errOut)
	rig := root.Named("rig")
	cast := rig.Named("cast")

	rig.Infof("ready")
	cast.Warnf("slow")
	assert.Contains(t, out.String(), "[demo/rig] INFO: ready")
	assert.Contains(t, errOut.String(), "[demo/rig/cast] WARN: slow")

	rig.Debugf("hidden")
	assert.NotContains(t, out.String(), "hidden")

	root.SetDebug(true)
	assert.True(t, rig.DebugEnabled())
	rig.Debugf("shown")
	assert.Contains(t, out.String(), "[demo/rig] DEBUG: shown")

	unprefixed := NewWriterLogger("", false, &out, &out).Named("rig")
	unprefixed.Infof("alone")
	assert.Contains(t, out.String(), "[rig] INFO: alone")
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	assert.NotNil(t, orNop(nil))
}
