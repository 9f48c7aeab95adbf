// Copyright 2024 Google Inc.
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

package declared

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/indent"
)

// Print writes s to w in YANG source form.
func Print(w io.Writer, s Statement) {
	fmt.Fprint(w, s.Kind().Keyword())
	if raw, ok := s.RawArgument(); ok {
		fmt.Fprintf(w, " %s", quote(raw))
	}
	if s.NumSubstatements() == 0 {
		fmt.Fprintln(w, ";")
		return
	}
	fmt.Fprintln(w, " {")
	iw := indent.NewWriter(w, "  ")
	for i := 0; i < s.NumSubstatements(); i++ {
		Print(iw, s.Substatement(i))
	}
	fmt.Fprintln(w, "}")
}

// quote returns raw unquoted if it is a single token, otherwise as a
// double quoted string.
func quote(raw string) string {
	if raw != "" && !strings.ContainsAny(raw, " \t\r\n;{}\"'/+") {
		return raw
	}
	return strconv.Quote(raw)
}
