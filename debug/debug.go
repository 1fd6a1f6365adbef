package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

type debug struct {
	Traverse bool
	Parse    bool
	Validate bool
	Tag      bool
}

var (
	d   *debug
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Traverse = boolEnv("SDM_DEBUG_TRAVERSE")
	d.Parse = boolEnv("SDM_DEBUG_PARSE")
	d.Validate = boolEnv("SDM_DEBUG_VALIDATE")
	d.Tag = boolEnv("SDM_DEBUG_TAG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Traverse() bool {
	return d.Traverse
}
func Parse() bool {
	return d.Parse
}
func Validate() bool {
	return d.Validate
}
func Tag() bool {
	return d.Tag
}

// Logf writes a trace line to stderr. Maps, slices and json.Number
// arguments are rendered as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, []string, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(out, msg, args...)
}
