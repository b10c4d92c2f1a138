// Package errors provides coded, actionable error values for tether.
//
// Every fatal misuse of the runtime (overlapping state access, element
// operations on listener products, mismatched products) aborts with a
// *TetherError carrying a stable code from the registry. Recoverable errors
// elsewhere in the module are plain wrapped errors; this package is only for
// conditions that indicate a bug in the caller or in generated template code.
//
// # Error Codes
//
// Each code maps to a category, a short message, a detailed explanation and
// a hint:
//
//	E101  exclusive access while state is already borrowed
//	E102  shared access while state is exclusively borrowed
//	E103  element operation on a non-visual product
//	E104  product type mismatch on update
//
// # Usage
//
//	panic(errors.New("E101").WithDetailf("state %s is borrowed", name))
//
// Recovered values can be inspected with errors.As or printed for a terminal
// with Format:
//
//	fmt.Fprint(os.Stderr, err.Format())
package errors
