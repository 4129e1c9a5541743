package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary pointers into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. This is helpful for turning pointer strings into
// something more easily distinguishable when reading sweep traces.
//
// Callers that format values on a hot path should check Enabled first, so
// the memo only grows while someone asked for readable traces.

var (
	mu      sync.Mutex
	memo    = make(map[interface{}]string)
	enabled int32
)

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the reader that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil || reflect.ValueOf(obj).IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Enable turns readable names on or off for callers that check Enabled.
func Enable(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&enabled, v)
}

func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// Len reports how many objects have been named so far.
func Len() int {
	mu.Lock()
	defer mu.Unlock()
	return len(memo)
}
