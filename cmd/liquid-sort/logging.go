package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/liquid-sort/constants"
)

// setupLogging returns a JSON file logger when debug is set, a no-op logger otherwise
// The file rotates at MaxLogSizeMB, keeping MaxLogBackups old files
// Nothing is ever written to stdout or stderr: the terminal belongs to the game
func setupLogging(debug bool, path, level string) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}
	if path == "" {
		path = filepath.Join(constants.LogDir, constants.LogFileName)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.MaxLogSizeMB,
		MaxBackups: constants.MaxLogBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), lvl)
	logger := zap.New(core, zap.AddCaller())

	cleanup := func() {
		_ = logger.Sync()
		_ = sink.Close()
	}
	return logger, cleanup, nil
}
