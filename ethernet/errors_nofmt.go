//go:build slimframe_nofmt
// +build slimframe_nofmt

package ethernet

func describe(kind Kind, _, _ int, _ uint16) string {
	return kind.Error()
}
