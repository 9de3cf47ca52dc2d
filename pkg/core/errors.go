/*
Copyright 2025 The pathway-optimizer Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import "fmt"

// DataValidationError reports a malformed or missing required input field.
// It is detected before model construction and fails the run immediately.
type DataValidationError struct {
	// Field identifies the offending field, e.g. "technology[ncc-electric].lifetime".
	Field string

	// Reason describes why the value is invalid.
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid input data: %s: %s", e.Field, e.Reason)
}

// Validationf builds a DataValidationError with a formatted reason.
func Validationf(field, format string, args ...any) *DataValidationError {
	return &DataValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DataGapError reports that a time series cannot be resolved because no known
// points exist in range.
type DataGapError struct {
	// Series names the series that could not be resolved,
	// e.g. "targets" or "cost[h2-cracker].capex".
	Series string
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("time series %q has no known points to interpolate from", e.Series)
}

// ModelIntegrityError reports a defect in model construction: an unexpectedly
// unbounded problem or a post-solve consistency violation. It is always fatal;
// it is never a normal outcome.
type ModelIntegrityError struct {
	// Check names the violated relation, e.g. "vintaging" or "mass-balance".
	Check string

	// Detail carries the offending values.
	Detail string
}

func (e *ModelIntegrityError) Error() string {
	return fmt.Sprintf("model integrity violation (%s): %s", e.Check, e.Detail)
}
