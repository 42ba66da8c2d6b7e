package env

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads the given file (e.g. ".env") and sets environment variables for each
// KEY=VALUE line. Variables already present in the process environment win, so a
// shell export overrides the file. The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	vars, err := Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, kv := range vars {
		if _, set := os.LookupEnv(kv[0]); set {
			continue
		}
		_ = os.Setenv(kv[0], kv[1])
	}
	return nil
}

// Parse returns the KEY=VALUE pairs of r in file order. Empty lines, lines starting
// with # and lines without a key are skipped; an optional "export " prefix is dropped.
func Parse(r io.Reader) ([][2]string, error) {
	var out [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		// Remove surrounding quotes if present
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		out = append(out, [2]string{key, value})
	}
	return out, scanner.Err()
}

// Float returns the float value of key. ok is false when key is unset or empty.
func Float(key string) (v float64, ok bool, err error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return v, true, nil
}

// Bool returns the boolean value of key (1/0, true/false, yes/no, on/off).
func Bool(key string) (v bool, ok bool, err error) {
	s := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch s {
	case "":
		return false, false, nil
	case "1", "true", "yes", "on":
		return true, true, nil
	case "0", "false", "no", "off":
		return false, true, nil
	}
	return false, false, fmt.Errorf("%s: invalid boolean %q", key, s)
}

// String returns the value of key with surrounding space trimmed.
func String(key string) (string, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	return s, s != ""
}
