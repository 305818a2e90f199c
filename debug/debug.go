package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Schema   bool
	Rules    bool
	Records  bool
	Parse    bool
	Validate bool
}

var d *debug

func init() {
	d = &debug{}
	all := boolEnv("LDOC_DEBUG")
	d.Schema = all || boolEnv("LDOC_DEBUG_SCHEMA")
	d.Rules = all || boolEnv("LDOC_DEBUG_RULES")
	d.Records = all || boolEnv("LDOC_DEBUG_RECORDS")
	d.Parse = all || boolEnv("LDOC_DEBUG_PARSE")
	d.Validate = all || boolEnv("LDOC_DEBUG_VALIDATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Schema() bool {
	return d.Schema
}
func Rules() bool {
	return d.Rules
}
func Records() bool {
	return d.Records
}
func Parse() bool {
	return d.Parse
}
func Validate() bool {
	return d.Validate
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
