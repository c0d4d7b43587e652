//go:build debug

package assert

// Enabled is whether assertion failures panic.
const Enabled = true
