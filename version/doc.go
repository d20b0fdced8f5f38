// Package version models the asf-example package version
// identifier. A version is either released (M.N.P) or a
// development snapshot (M.N.P-devK); Parse and the bump
// operations keep every other state unrepresentable.
package version
