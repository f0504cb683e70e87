package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// writeInvocationLog appends one record of the invocation's arguments to
// the file named by PKG_CONFIG_LOG, if set, opening in append mode and
// closing before argument dispatch begins (spec.md §5). A no-op when the
// variable is unset. Failure to open the configured log file is fatal:
// the canonical behavior is to abort so a misconfigured log path is
// visible rather than silently ignored.
func writeInvocationLog(env environ, args []string) error {
	path := env.get("PKG_CONFIG_LOG")
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("pkgconf: opening PKG_CONFIG_LOG file %q: %w", path, err)
	}
	defer f.Close()

	record := fmt.Sprintf("%s %s\n", time.Now().Format(time.RFC3339), strings.Join(args, " "))
	if _, err := f.WriteString(record); err != nil {
		return fmt.Errorf("pkgconf: writing PKG_CONFIG_LOG record: %w", err)
	}
	return nil
}
