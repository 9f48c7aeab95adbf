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

// Package util contains error accumulation and debug helpers shared by the
// statement model packages.
package util

import (
	"fmt"
)

// Errors is a slice of error.
type Errors []error

// Error implements the error#Error method.
func (e Errors) Error() string {
	return ToString([]error(e))
}

// String implements the stringer#String method.
func (e Errors) String() string {
	return e.Error()
}

// Unwrap returns the accumulated errors such that errors.Is and errors.As
// match against any of them.
func (e Errors) Unwrap() []error {
	return []error(e)
}

// NewErrs returns a slice of error with a single element err.
// If err is nil, returns nil.
func NewErrs(err error) Errors {
	if err == nil {
		return nil
	}
	return []error{err}
}

// AppendErr appends err to errors if it is not nil and returns the result.
// If err is nil, it is not appended.
func AppendErr(errors []error, err error) Errors {
	if len(errors) == 0 && err == nil {
		return nil
	}
	if err == nil {
		return errors
	}
	return append(errors, err)
}

// AppendErrs appends newErrs to errors and returns the result.
// If newErrs is empty, nothing is appended.
func AppendErrs(errors []error, newErrs []error) Errors {
	if len(errors) == 0 && len(newErrs) == 0 {
		return nil
	}
	for _, e := range newErrs {
		errors = AppendErr(errors, e)
	}
	return errors
}

// ToString returns a string representation of errors. Any nil errors in the
// slice are skipped.
func ToString(errors []error) string {
	var out string
	for _, e := range errors {
		if e == nil {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += e.Error()
	}
	return out
}

// PrefixErrors prefixes each error within the supplied Errors slice with the
// string pfx.
func PrefixErrors(errs Errors, pfx string) Errors {
	var nerr Errors
	for _, err := range errs {
		nerr = append(nerr, fmt.Errorf("%s: %v", pfx, err))
	}
	return nerr
}

// UniqueErrors returns the unique errors from the supplied Errors slice.
// Errors are considered equal if they have equal stringified values.
func UniqueErrors(errs Errors) Errors {
	if errs == nil {
		return errs
	}
	seen := map[string]bool{}
	var nerr Errors
	for _, err := range errs {
		if s := err.Error(); !seen[s] {
			seen[s] = true
			nerr = append(nerr, err)
		}
	}
	return nerr
}
