// Package prompt asks for missing generation settings on a terminal. The
// Driver interface keeps survey out of the flow logic so it can be tested
// with a scripted driver.
package prompt
