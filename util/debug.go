// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kylelemons/godebug/pretty"
)

var (
	// debugLibrary controls the debugging output from effective tree
	// construction.
	debugLibrary = false
	// maxCharsPerLine is the maximum number of characters per line from
	// DbgPrint. Additional characters are truncated.
	maxCharsPerLine = 1000
	// maxValueStrLen is the maximum number of characters output from ValueStr.
	maxValueStrLen = 150
)

// SetDebug enables or disables the output of DbgPrint.
func SetDebug(b bool) {
	dbgMu.Lock()
	defer dbgMu.Unlock()
	debugLibrary = b
}

// dbgMu serialises debug output, which may be produced by concurrent
// builders.
var dbgMu sync.Mutex

// DbgPrint prints v if the package global variable debugLibrary is set.
// v has the same format as Printf. A trailing newline is added to the output.
func DbgPrint(v ...interface{}) {
	dbgMu.Lock()
	defer dbgMu.Unlock()
	if !debugLibrary {
		return
	}
	out := fmt.Sprintf(v[0].(string), v[1:]...)
	if len(out) > maxCharsPerLine {
		out = out[:maxCharsPerLine]
	}
	fmt.Println(globalIndent + out)
}

// globalIndent is used to control Indent level.
var globalIndent = ""

// Indent increases DbgPrint Indent level.
func Indent() {
	dbgMu.Lock()
	defer dbgMu.Unlock()
	globalIndent += ". "
}

// Dedent decreases DbgPrint Indent level.
func Dedent() {
	dbgMu.Lock()
	defer dbgMu.Unlock()
	globalIndent = strings.TrimPrefix(globalIndent, ". ")
}

var valueConfig = &pretty.Config{
	Compact:        true,
	PrintStringers: true,
}

// ValueStr returns a compact, single line representation of value, such as
// a statement argument, truncated to maxValueStrLen characters.
func ValueStr(value interface{}) string {
	if value == nil {
		return "nil"
	}
	out := fmt.Sprintf("%s (type %T)", valueConfig.Sprint(value), value)
	if len(out) > maxValueStrLen {
		out = out[:maxValueStrLen] + "..."
	}
	return out
}
