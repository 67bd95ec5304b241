package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger.Out
	origLevel := Logger.GetLevel()
	t.Cleanup(func() {
		Logger.SetOutput(orig)
		Logger.SetLevel(origLevel)
	})
	Logger.SetOutput(&buf)

	SetVerbose(true)
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	WithComponent("rewrite").Debug("applied rules")
	assert.Contains(t, buf.String(), "component=rewrite")
	assert.Contains(t, buf.String(), "applied rules")
}

func TestSetVerboseFalseKeepsLevel(t *testing.T) {
	origLevel := Logger.GetLevel()
	t.Cleanup(func() { Logger.SetLevel(origLevel) })
	Logger.SetLevel(logrus.InfoLevel)

	SetVerbose(false)

	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
