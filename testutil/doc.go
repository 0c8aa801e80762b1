// Package testutil provides test helpers for code that mounts dime packages.
//
// # Quick Start
//
//	func TestSignup(t *testing.T) {
//	    d := testutil.NewDime(t, testutil.MustPackage(t, "Core",
//	        provider.UseValue(token.String("port"), 8080),
//	    ))
//	    // d is torn down when the test ends
//	}
//
// Instances created here log nothing, record no metrics and never emit the
// inject timeout warning. Use T(t).WithOptions to change that, and
// LogBuffer to assert on log output.
package testutil
