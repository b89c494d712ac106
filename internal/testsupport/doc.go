// Package testsupport builds throwaway configurations and stub binaries for
// package tests.
package testsupport
