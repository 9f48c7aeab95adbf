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

package effective

import (
	"fmt"
	"io"

	"github.com/openconfig/goyang/pkg/indent"
)

// Print writes a description of the effective tree rooted at s to w, one
// statement per line. Schema tree nodes are annotated with their path and
// flags, undeclared statements are marked, and copies name the path of
// their original.
func Print(w io.Writer, s Statement) error {
	if _, err := fmt.Fprintln(w, line(s)); err != nil {
		return err
	}
	if s.NumSubstatements() == 0 {
		return nil
	}
	iw := indent.NewWriter(w, "  ")
	for i := 0; i < s.NumSubstatements(); i++ {
		if err := Print(iw, s.Substatement(i)); err != nil {
			return err
		}
	}
	return nil
}

func line(s Statement) string {
	l := s.Kind().Keyword()
	if a := ArgumentString(s); a != "" {
		l = fmt.Sprintf("%s %s", l, a)
	}
	if IsUndeclared(s) {
		l += " (undeclared)"
	}
	if p := s.Path(); !p.IsZero() {
		l = fmt.Sprintf("%s [%s] %s", l, p, s.Flags())
	}
	if o := s.Original(); o != nil {
		l = fmt.Sprintf("%s <- %s", l, o.Path())
	}
	return l
}
