package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides for a build of files inputs. Auto shows the UI only
// for several files on a terminal, and never when assembly goes to stdout.
func shouldUseTUI(mode uiMode, files int, toStdout bool) bool {
	switch mode {
	case uiModeOn:
		return !toStdout
	case uiModeOff:
		return false
	default:
		return files > 1 && !toStdout && isTerminal(os.Stdout)
	}
}
