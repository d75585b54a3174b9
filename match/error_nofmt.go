//go:build slimframe_nofmt
// +build slimframe_nofmt

package match

func describe(field string, _ uint64) string {
	return "no recognized " + field
}
