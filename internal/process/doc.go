// Package process terminates the headless browser's process tree when PDF
// export shuts down.
package process
