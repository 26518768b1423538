package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevel(t *testing.T) {
	l := Logger{Level: "debug", Format: "json"}
	l.Setup()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	l = Logger{Level: "error", Format: "json"}
	l.Setup()
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestSetupUnknownLevel(t *testing.T) {
	l := Logger{Level: "bogus", Format: "json"}
	l.Setup()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
