package errors_test

import (
	"fmt"

	"github.com/agentstation/tryouts/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewStructuralError(errors.CategoryMismatch, "night1.csv", 12, "categories definitions do not match")

	if errors.IsStructural(err) {
		code, _ := errors.StructuralCodeOf(err)
		fmt.Println("file rejected:", code)
	}

	// Output: file rejected: CategoryMismatch
}

// Example_versionError shows how the version gate reports a stale record.
func Example_versionError() {
	err := errors.NewVersionError(errors.StaleVersion, "tablet3.json", "1")

	fmt.Println(err)
	fmt.Println(errors.IsVersion(err))

	// Output:
	// file tablet3.json: version 1 is from an old db version
	// true
}
