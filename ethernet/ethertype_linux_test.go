//go:build linux
// +build linux

package ethernet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestEtherTypeCodesKernel(t *testing.T) {
	for _, tc := range []struct {
		ref  int
		want EtherType
	}{
		{unix.ETH_P_IP, EtherTypeIPv4},
		{unix.ETH_P_ARP, EtherTypeARP},
		{unix.ETH_P_RARP, EtherTypeRARP},
		{unix.ETH_P_ATALK, EtherTypeAppleTalk},
		{unix.ETH_P_AARP, EtherTypeAARP},
		{unix.ETH_P_IPX, EtherTypeIPX},
		{unix.ETH_P_IPV6, EtherTypeIPv6},
		{unix.ETH_P_PAUSE, EtherTypeEthernetFlowControl},
		{unix.ETH_P_SLOW, EtherTypeEthernetSlowProtocols},
		{unix.ETH_P_MPLS_UC, EtherTypeMPLSUnicast},
		{unix.ETH_P_MPLS_MC, EtherTypeMPLSMulticast},
		{unix.ETH_P_PPP_DISC, EtherTypePPPoEDiscovery},
		{unix.ETH_P_PPP_SES, EtherTypePPPoESession},
		{unix.ETH_P_PAE, EtherTypeEAPOverLAN},
		{unix.ETH_P_AOE, EtherTypeAoE},
		{unix.ETH_P_LLDP, EtherTypeLLDP},
		{unix.ETH_P_MACSEC, EtherTypeMACsec},
		{unix.ETH_P_1588, EtherTypePTP},
		{unix.ETH_P_NCSI, EtherTypeNCSI},
		{unix.ETH_P_PRP, EtherTypePRP},
		{unix.ETH_P_FCOE, EtherTypeFCoE},
		{unix.ETH_P_FIP, EtherTypeFIP},
		{unix.ETH_P_HSR, EtherTypeHSR},
		{unix.ETH_P_LOOPBACK, EtherTypeECTP},
	} {
		t.Run(tc.want.String(), func(t *testing.T) {
			require.Equal(t, uint16(tc.ref), tc.want.Code())
		})
	}

	require.Equal(t, uint16(unix.ETH_P_8021Q), TPIDCustomerTag)
	require.Equal(t, uint16(unix.ETH_P_8021AD), TPIDServiceTag)
}
