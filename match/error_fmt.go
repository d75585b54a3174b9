//go:build !slimframe_nofmt
// +build !slimframe_nofmt

package match

import "fmt"

func describe(field string, value uint64) string {
	return fmt.Sprintf("no recognized %s, was: 0x%04x", field, value)
}
