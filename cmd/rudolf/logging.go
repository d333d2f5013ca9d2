package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/rudolf/constant"
)

// setupLogging points the standard logger at dir/rudolf.log when debug is set
// A file over constant.MaxLogSize is rotated to a timestamped name first
// Returns nil with logging discarded when debug is off or the file cannot be opened
func setupLogging(dir string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(dir, constant.LogFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > constant.MaxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s.log", constant.AppName, time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
