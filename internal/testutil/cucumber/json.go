package cucumber

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pmezard/go-difflib/difflib"
)

// JSONMustContain fails unless every field of expected is present in actual
// with the same value. Objects in actual may carry extra keys; arrays must
// have the same length.
func JSONMustContain(actual, expected []byte) error {
	var got, want any
	if err := json.Unmarshal(actual, &got); err != nil {
		return fmt.Errorf("error parsing actual json: %w\njson was:\n%s", err, actual)
	}
	if err := json.Unmarshal(expected, &want); err != nil {
		return fmt.Errorf("error parsing expected json: %w\njson was:\n%s", err, expected)
	}
	if err := jsonSubset(want, got, "$"); err != nil {
		a, _ := json.MarshalIndent(want, "", "  ")
		b, _ := json.MarshalIndent(got, "", "  ")
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(a)),
			B:        difflib.SplitLines(string(b)),
			FromFile: "Expected",
			ToFile:   "Actual",
			Context:  1,
		})
		return fmt.Errorf("%w, diff:\n%s", err, diff)
	}
	return nil
}

func jsonSubset(expected, actual any, path string) error {
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return fmt.Errorf("at %s: expected object, got %T", path, actual)
		}
		for key, v := range exp {
			av, exists := act[key]
			if !exists {
				return fmt.Errorf("at %s: missing key %q", path, key)
			}
			if err := jsonSubset(v, av, path+"."+key); err != nil {
				return err
			}
		}
	case []any:
		act, ok := actual.([]any)
		if !ok {
			return fmt.Errorf("at %s: expected array, got %T", path, actual)
		}
		if len(exp) != len(act) {
			return fmt.Errorf("at %s: expected array length %d, got %d", path, len(exp), len(act))
		}
		for i := range exp {
			if err := jsonSubset(exp[i], act[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	default:
		if !reflect.DeepEqual(expected, actual) {
			return fmt.Errorf("at %s: expected %v, got %v", path, expected, actual)
		}
	}
	return nil
}
